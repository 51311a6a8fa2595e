package model

import "time"

// Seller is a store operator selectable on the register. The register keeps
// the same seller across transactions until it is changed explicitly.
type Seller struct {
	BaseModel
	Name           string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone          string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	EmergencyPhone string     `gorm:"type:varchar(20)" json:"emergency_phone,omitempty"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`

	Address SaleAddress `gorm:"embedded;embeddedPrefix:address_" json:"address"`
}
