package pos

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"go-boutique-pos/internal/model"
)

// Error definitions
var (
	ErrOutOfStock = errors.New("product is out of stock")
	ErrStockLimit = errors.New("maximum stock reached")
)

// CartItem is one register line. Stock is the variant stock captured when the
// SKU entered the cart and is the upper bound for every later quantity edit.
type CartItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	VariantInfo string          `json:"variant_info"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
}

// DeliveryInfo is the at-most-one delivery selection on a cart. Fee comes from
// a matched DeliveryFee row, never from user input.
type DeliveryInfo struct {
	Fee     decimal.Decimal   `json:"fee"`
	Address model.SaleAddress `json:"address"`
	Notes   string            `json:"notes,omitempty"`
}

// Cart holds the single in-progress sale of one register: line items keyed by
// SKU plus the customer, seller and delivery selections. All mutations enforce
// the stock-snapshot bound; every observable state satisfies
// 0 < quantity <= stock for each line.
type Cart struct {
	mu       sync.Mutex
	items    []CartItem
	customer *model.Customer
	seller   *model.Seller
	delivery *DeliveryInfo
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem puts one unit of the variant in the cart. A variant without stock is
// rejected. If the SKU is already present the quantity grows by one unless the
// snapshot bound is hit, in which case the cart is left unchanged.
func (c *Cart) AddItem(product *model.Product, variant model.ProductVariant) error {
	if variant.Stock <= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SKU != variant.SKU {
			continue
		}
		if c.items[i].Quantity+1 > c.items[i].Stock {
			return fmt.Errorf("%w: %d units of %s", ErrStockLimit, c.items[i].Stock, product.Name)
		}
		c.items[i].Quantity++
		return nil
	}

	c.items = append(c.items, CartItem{
		ProductID:   product.ID.String(),
		ProductName: product.Name,
		SKU:         variant.SKU,
		VariantInfo: variant.VariantInfo(),
		Quantity:    1,
		UnitPrice:   product.BasePrice,
		Stock:       variant.Stock,
	})
	return nil
}

// RemoveItem deletes the line for the SKU. Removing an absent SKU is a no-op.
func (c *Cart) RemoveItem(sku string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SKU == sku {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line quantity for the SKU. Zero or less removes the
// line; a value above the stock snapshot is rejected and the previous quantity
// stays in place. Unknown SKUs are a no-op.
func (c *Cart) UpdateQuantity(sku string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SKU != sku {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
		if quantity > c.items[i].Stock {
			return fmt.Errorf("%w: %d units", ErrStockLimit, c.items[i].Stock)
		}
		c.items[i].Quantity = quantity
		return nil
	}
	return nil
}

func (c *Cart) SetCustomer(customer *model.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customer = customer
}

func (c *Cart) Customer() *model.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customer
}

func (c *Cart) SetSeller(seller *model.Seller) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seller = seller
}

func (c *Cart) Seller() *model.Seller {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seller
}

func (c *Cart) SetDelivery(info *DeliveryInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivery = info
}

func (c *Cart) Delivery() *DeliveryInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delivery
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Subtotal is the exact sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

func (c *Cart) subtotalLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Total is the subtotal plus the delivery fee, when a delivery is attached.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.subtotalLocked()
	if c.delivery != nil {
		total = total.Add(c.delivery.Fee)
	}
	return total
}

// Clear empties the lines and drops the customer and delivery selections. The
// seller stays: the register keeps the same operator across transactions.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.customer = nil
	c.delivery = nil
}

// Snapshot is the by-value hand-off of cart state to the commit protocol.
type Snapshot struct {
	Items    []CartItem
	Customer *model.Customer
	Seller   *model.Seller
	Delivery *DeliveryInfo
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// Snapshot captures the cart state at one instant, for commit.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]CartItem, len(c.items))
	copy(items, c.items)

	subtotal := c.subtotalLocked()
	total := subtotal
	if c.delivery != nil {
		total = total.Add(c.delivery.Fee)
	}

	return Snapshot{
		Items:    items,
		Customer: c.customer,
		Seller:   c.seller,
		Delivery: c.delivery,
		Subtotal: subtotal,
		Total:    total,
	}
}
