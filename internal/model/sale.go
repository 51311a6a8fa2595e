package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "Concluída"
	SaleCancelled SaleStatus = "Cancelada"
	SaleExchange  SaleStatus = "Em Troca"
)

type PaymentMethod string

const (
	PayCredit PaymentMethod = "Crédito"
	PayDebit  PaymentMethod = "Débito"
	PayCash   PaymentMethod = "Dinheiro"
	PayPix    PaymentMethod = "Pix"
)

// PaymentMethods lists every accepted tender method.
var PaymentMethods = []PaymentMethod{PayCredit, PayDebit, PayCash, PayPix}

// Valid reports whether m is one of the accepted tender methods.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Sale is a committed checkout. Its ID comes from the monotonic sale counter,
// not from a UUID, so DisplayID stays a stable human-facing rendering of the
// same number. After creation only Status is ever mutated (by cancellation);
// deletion is a separate administrative path that restocks first.
type Sale struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	DisplayID string `gorm:"type:varchar(10);uniqueIndex;not null" json:"display_id"`

	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	CustomerName string     `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	SellerID     *uuid.UUID `gorm:"type:uuid;index" json:"seller_id"`
	SellerName   string     `gorm:"type:varchar(255)" json:"seller_name,omitempty"`

	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2)" json:"discount"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2)" json:"delivery_fee"`
	FinalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_amount"`

	DeliveryAddress SaleAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`
	DeliveryNotes   string      `gorm:"type:text" json:"delivery_notes,omitempty"`

	// Ordered tenders; insertion order is the tender order
	Payments   []Payment       `gorm:"constraint:OnDelete:CASCADE" json:"payments"`
	AmountPaid decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount_paid"`
	ChangeDue  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"change_due"`

	Timestamp time.Time  `gorm:"not null;index" json:"timestamp"`
	Status    SaleStatus `gorm:"type:varchar(20);not null" json:"status"`

	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
}

// SaleAddress is the point-in-time copy of the delivery address embedded into
// the sale row. Zero value means no delivery on this sale.
type SaleAddress struct {
	Street       string `gorm:"type:varchar(255)" json:"street,omitempty"`
	Number       string `gorm:"type:varchar(20)" json:"number,omitempty"`
	Complement   string `gorm:"type:varchar(100)" json:"complement,omitempty"`
	Neighborhood string `gorm:"type:varchar(100)" json:"neighborhood,omitempty"`
	City         string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State        string `gorm:"type:varchar(50)" json:"state,omitempty"`
	ZipCode      string `gorm:"type:varchar(15)" json:"zip_code,omitempty"`
}

// IsZero reports whether no delivery address was captured.
func (a SaleAddress) IsZero() bool {
	return a == SaleAddress{}
}

type SaleItem struct {
	ID       uint            `gorm:"primaryKey" json:"-"`
	SaleID   int64           `gorm:"index;not null" json:"-"`
	SKU      string          `gorm:"type:varchar(50);index;not null" json:"sku"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"` // unit price at sale time
}

type Payment struct {
	ID       uint            `gorm:"primaryKey" json:"-"`
	SaleID   int64           `gorm:"index;not null" json:"-"`
	Position int             `gorm:"not null" json:"-"` // tender order within the sale
	Method   PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
}

// SaleCounter is the single-row, process-wide sequential source for sale IDs.
// It is read and incremented under a row lock inside the commit transaction.
type SaleCounter struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null;default:0"`
}

// FormatDisplayID renders the human-facing sale number, e.g. #00042.
func FormatDisplayID(n int64) string {
	return fmt.Sprintf("#%05d", n)
}
