package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	BaseModel
	Name      string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone     string     `gorm:"type:varchar(20);not null" json:"phone" validate:"required"`
	Email     string     `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`

	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

// Address is a delivery/registration address. It is also embedded (without the
// relational fields) into a Sale as the delivery-address snapshot.
type Address struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Street       string     `gorm:"type:varchar(255)" json:"street" validate:"required"`
	Number       string     `gorm:"type:varchar(20)" json:"number,omitempty"`
	Complement   string     `gorm:"type:varchar(100)" json:"complement,omitempty"`
	Neighborhood string     `gorm:"type:varchar(100)" json:"neighborhood" validate:"required"`
	City         string     `gorm:"type:varchar(100)" json:"city" validate:"required"`
	State        string     `gorm:"type:varchar(50)" json:"state" validate:"required"`
	ZipCode      string     `gorm:"type:varchar(15)" json:"zip_code,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// ToSaleAddress copies the address fields that get snapshotted onto a sale.
func (a Address) ToSaleAddress() SaleAddress {
	return SaleAddress{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}
