package repository

import (
	"go-boutique-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uuid.UUID) error
	AddAddress(customerID uuid.UUID, address *model.Address) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Preload("Addresses").Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Preload("Addresses").First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(customer).Error
}

func (r *customerRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&model.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Customer{}, "id = ?", id).Error
	})
}

// AddAddress attaches a new address to the customer, used by the delivery flow
// when the operator registers an address mid-sale.
func (r *customerRepo) AddAddress(customerID uuid.UUID, address *model.Address) error {
	address.CustomerID = &customerID
	return r.db.Create(address).Error
}
