package model

import "github.com/shopspring/decimal"

// DeliveryFee maps a neighborhood to its flat delivery price. Matching is by
// neighborhood name, case and surrounding-whitespace insensitive.
type DeliveryFee struct {
	BaseModel
	Neighborhood string          `gorm:"type:varchar(100);not null" json:"neighborhood" validate:"required"`
	City         string          `gorm:"type:varchar(100);not null" json:"city" validate:"required"`
	Fee          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"fee" validate:"amount_gte_zero"`
}
