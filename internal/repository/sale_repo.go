package repository

import (
	"errors"
	"time"

	"go-boutique-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleFilter narrows the sales history listing. Nil fields are ignored.
type SaleFilter struct {
	From       *time.Time
	To         *time.Time
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
}

type SaleRepository interface {
	NextNumber(tx *gorm.DB) (int64, error)
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(filter SaleFilter) ([]model.Sale, error)
	FindByID(id int64) (*model.Sale, error)
	LockByID(tx *gorm.DB, id int64) (*model.Sale, error)
	UpdateStatus(tx *gorm.DB, id int64, status model.SaleStatus, updatedBy string) error
	Delete(tx *gorm.DB, id int64) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// NextNumber increments and returns the sequential sale counter under a row
// lock. Must run inside the commit transaction so concurrent registers cannot
// observe the same number.
func (r *saleRepo) NextNumber(tx *gorm.DB) (int64, error) {
	var counter model.SaleCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&counter).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		counter = model.SaleCounter{Value: 0}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	}

	counter.Value++
	if err := tx.Save(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll(filter SaleFilter) ([]model.Sale, error) {
	q := r.db.Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("timestamp DESC")

	if filter.From != nil {
		q = q.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("timestamp <= ?", *filter.To)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		q = q.Where("id IN (?)", r.db.Model(&model.SaleItem{}).
			Select("sale_id").
			Where("sku IN (?)", r.db.Model(&model.ProductVariant{}).
				Select("sku").
				Where("product_id = ?", *filter.ProductID)))
	}

	var sales []model.Sale
	err := q.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id int64) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// LockByID loads a sale with its items under FOR UPDATE, for cancellation and
// deletion.
func (r *saleRepo) LockByID(tx *gorm.DB, id int64) (*model.Sale, error) {
	var sale model.Sale
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("sale_id = ?", id).Find(&sale.Items).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) UpdateStatus(tx *gorm.DB, id int64, status model.SaleStatus, updatedBy string) error {
	return tx.Model(&model.Sale{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

// Delete removes the sale row and its children for good. Restocking, when
// owed, is the caller's responsibility and must happen in the same transaction.
func (r *saleRepo) Delete(tx *gorm.DB, id int64) error {
	if err := tx.Where("sale_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("sale_id = ?", id).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Sale{}, "id = ?", id).Error
}
