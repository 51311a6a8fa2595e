package repository

import (
	"go-boutique-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindVariantBySKU(sku string) (*model.ProductVariant, error)
	FindProductBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	LockVariantBySKU(tx *gorm.DB, sku string) (*model.ProductVariant, error)
	UpdateVariantStock(tx *gorm.DB, variantID uint, newStock int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Variants").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Variants").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindVariantBySKU(sku string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindProductBySKU returns the product owning the variant with the given SKU.
func (r *productRepo) FindProductBySKU(sku string) (*model.Product, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return r.FindByID(variant.ProductID)
}

// Update saves the product and its variant set, removing variants that were
// dropped from the list. Runs in its own transaction.
func (r *productRepo) Update(product *model.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		kept := make([]string, 0, len(product.Variants))
		for _, v := range product.Variants {
			kept = append(kept, v.SKU)
		}

		q := tx.Where("product_id = ?", product.ID)
		if len(kept) > 0 {
			q = q.Where("sku NOT IN ?", kept)
		}
		if err := q.Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
	})
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

// LockVariantBySKU loads a variant under FOR UPDATE so stock adjustments
// cannot interleave. Must run inside a transaction.
func (r *productRepo) LockVariantBySKU(tx *gorm.DB, sku string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// UpdateVariantStock writes the new stock level inside the caller's transaction.
func (r *productRepo) UpdateVariantStock(tx *gorm.DB, variantID uint, newStock int) error {
	return tx.Model(&model.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock", newStock).Error
}
