package repository

import (
	"go-boutique-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SellerRepository interface {
	Create(seller *model.Seller) error
	FindAll() ([]model.Seller, error)
	FindByID(id uuid.UUID) (*model.Seller, error)
	Update(seller *model.Seller) error
	Delete(id uuid.UUID) error
}

type sellerRepo struct {
	db *gorm.DB
}

func NewSellerRepo(db *gorm.DB) SellerRepository {
	return &sellerRepo{db}
}

func (r *sellerRepo) Create(seller *model.Seller) error {
	return r.db.Create(seller).Error
}

func (r *sellerRepo) FindAll() ([]model.Seller, error) {
	var sellers []model.Seller
	err := r.db.Order("name ASC").Find(&sellers).Error
	return sellers, err
}

func (r *sellerRepo) FindByID(id uuid.UUID) (*model.Seller, error) {
	var seller model.Seller
	if err := r.db.First(&seller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *sellerRepo) Update(seller *model.Seller) error {
	return r.db.Save(seller).Error
}

func (r *sellerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Seller{}, "id = ?", id).Error
}
