package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price" validate:"amount_positive"`
	CostPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"cost_price" validate:"amount_gte_zero"`

	// Each variant carries its own stock; SKU is the global item identifier
	Variants []ProductVariant `json:"variants" validate:"required,min=1,dive"`
}

// ProductVariant is one color/size combination of a product. Stock is the
// number of sellable units and is only mutated through the checkout flow or
// inventory edits, never driven negative.
type ProductVariant struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	SKU       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Color     string    `gorm:"type:varchar(50)" json:"color"`
	Size      string    `gorm:"type:varchar(20)" json:"size"`
	Stock     int       `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
}

// VariantInfo renders the human-facing variant label shown on cart lines and
// receipts.
func (v ProductVariant) VariantInfo() string {
	if v.Size == "" {
		return v.Color
	}
	if v.Color == "" {
		return v.Size
	}
	return v.Size + " / " + v.Color
}

// FindVariant returns the variant with the given SKU, or nil.
func (p *Product) FindVariant(sku string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}
