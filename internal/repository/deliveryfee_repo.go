package repository

import (
	"go-boutique-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryFeeRepository interface {
	Create(fee *model.DeliveryFee) error
	FindAll() ([]model.DeliveryFee, error)
	FindByID(id uuid.UUID) (*model.DeliveryFee, error)
	Update(fee *model.DeliveryFee) error
	Delete(id uuid.UUID) error
}

type deliveryFeeRepo struct {
	db *gorm.DB
}

func NewDeliveryFeeRepo(db *gorm.DB) DeliveryFeeRepository {
	return &deliveryFeeRepo{db}
}

func (r *deliveryFeeRepo) Create(fee *model.DeliveryFee) error {
	return r.db.Create(fee).Error
}

func (r *deliveryFeeRepo) FindAll() ([]model.DeliveryFee, error) {
	var fees []model.DeliveryFee
	err := r.db.Order("neighborhood ASC").Find(&fees).Error
	return fees, err
}

func (r *deliveryFeeRepo) FindByID(id uuid.UUID) (*model.DeliveryFee, error) {
	var fee model.DeliveryFee
	if err := r.db.First(&fee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *deliveryFeeRepo) Update(fee *model.DeliveryFee) error {
	return r.db.Save(fee).Error
}

func (r *deliveryFeeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.DeliveryFee{}, "id = ?", id).Error
}
