package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-boutique-pos/internal/model"
)

func testProduct(name string, price string, variants ...model.ProductVariant) *model.Product {
	p := &model.Product{
		Name:      name,
		BasePrice: decimal.RequireFromString(price),
		Variants:  variants,
	}
	p.ID = uuid.New()
	return p
}

func variant(sku string, stock int) model.ProductVariant {
	return model.ProductVariant{SKU: sku, Color: "Preto", Size: "M", Stock: stock}
}

func TestAddItem_NewLineStartsAtOne(t *testing.T) {
	cart := NewCart()
	p := testProduct("Vestido Longo", "149.90", variant("VES-001", 3))

	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	items := cart.Items()
	require.Len(t, items, 1)
	require.Equal(t, "VES-001", items[0].SKU)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, 3, items[0].Stock)
	require.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("149.90")))
}

func TestAddItem_SameSKUIncrementsQuantity(t *testing.T) {
	cart := NewCart()
	p := testProduct("Calça Jeans", "89.90", variant("CAL-010", 2))

	require.NoError(t, cart.AddItem(p, p.Variants[0]))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	items := cart.Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
}

func TestAddItem_RejectsBeyondStockSnapshot(t *testing.T) {
	cart := NewCart()
	p := testProduct("Blusa", "59.90", variant("BLU-001", 2))

	require.NoError(t, cart.AddItem(p, p.Variants[0]))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	err := cart.AddItem(p, p.Variants[0])
	require.ErrorIs(t, err, ErrStockLimit)

	// the failed add leaves the line untouched
	require.Equal(t, 2, cart.Items()[0].Quantity)
}

func TestAddItem_RejectsOutOfStock(t *testing.T) {
	cart := NewCart()
	p := testProduct("Saia", "79.90", variant("SAI-001", 0))

	err := cart.AddItem(p, p.Variants[0])
	require.ErrorIs(t, err, ErrOutOfStock)
	require.True(t, cart.IsEmpty())
}

func TestUpdateQuantity_WithinBound(t *testing.T) {
	cart := NewCart()
	p := testProduct("Camisa", "99.00", variant("CAM-001", 5))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	require.NoError(t, cart.UpdateQuantity("CAM-001", 5))
	require.Equal(t, 5, cart.Items()[0].Quantity)
}

func TestUpdateQuantity_AboveSnapshotKeepsPrevious(t *testing.T) {
	cart := NewCart()
	p := testProduct("Camisa", "99.00", variant("CAM-001", 5))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))
	require.NoError(t, cart.UpdateQuantity("CAM-001", 3))

	err := cart.UpdateQuantity("CAM-001", 6)
	require.ErrorIs(t, err, ErrStockLimit)
	require.Equal(t, 3, cart.Items()[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	p := testProduct("Camisa", "99.00", variant("CAM-001", 5))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	require.NoError(t, cart.UpdateQuantity("CAM-001", 0))
	require.True(t, cart.IsEmpty())

	require.NoError(t, cart.AddItem(p, p.Variants[0]))
	require.NoError(t, cart.UpdateQuantity("CAM-001", -2))
	require.True(t, cart.IsEmpty())
}

func TestUpdateQuantity_UnknownSKUIsNoop(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.UpdateQuantity("NOPE-001", 3))
	require.True(t, cart.IsEmpty())
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	cart := NewCart()
	p := testProduct("Camisa", "99.00", variant("CAM-001", 5))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	cart.RemoveItem("CAM-001")
	require.True(t, cart.IsEmpty())
	cart.RemoveItem("CAM-001") // second remove must not panic or error
	require.True(t, cart.IsEmpty())
}

func TestSubtotalAndTotal_ExactDecimalSums(t *testing.T) {
	cart := NewCart()
	a := testProduct("Vestido", "149.90", variant("VES-001", 10))
	b := testProduct("Cinto", "39.90", variant("CIN-001", 10))

	require.NoError(t, cart.AddItem(a, a.Variants[0]))
	require.NoError(t, cart.AddItem(a, a.Variants[0]))
	require.NoError(t, cart.AddItem(b, b.Variants[0]))

	require.True(t, cart.Subtotal().Equal(decimal.RequireFromString("339.70")))

	cart.SetDelivery(&DeliveryInfo{Fee: decimal.RequireFromString("12.50")})
	require.True(t, cart.Total().Equal(decimal.RequireFromString("352.20")))

	// subtotal never includes the delivery fee
	require.True(t, cart.Subtotal().Equal(decimal.RequireFromString("339.70")))
}

func TestClear_PreservesSeller(t *testing.T) {
	cart := NewCart()
	p := testProduct("Vestido", "149.90", variant("VES-001", 10))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	customer := &model.Customer{Name: "Maria"}
	seller := &model.Seller{Name: "Ana"}
	cart.SetCustomer(customer)
	cart.SetSeller(seller)
	cart.SetDelivery(&DeliveryInfo{Fee: decimal.RequireFromString("10.00")})

	cart.Clear()

	require.True(t, cart.IsEmpty())
	require.Nil(t, cart.Customer())
	require.Nil(t, cart.Delivery())
	require.Same(t, seller, cart.Seller())
}

func TestSnapshot_IsDetachedCopy(t *testing.T) {
	cart := NewCart()
	p := testProduct("Vestido", "100.00", variant("VES-001", 10))
	require.NoError(t, cart.AddItem(p, p.Variants[0]))

	snap := cart.Snapshot()
	require.Len(t, snap.Items, 1)
	require.True(t, snap.Subtotal.Equal(decimal.RequireFromString("100.00")))

	// mutating the cart after the snapshot must not change the snapshot
	require.NoError(t, cart.UpdateQuantity("VES-001", 4))
	require.Equal(t, 1, snap.Items[0].Quantity)
}
