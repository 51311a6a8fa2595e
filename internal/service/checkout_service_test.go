package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/pos"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshotFixture() pos.Snapshot {
	customer := &model.Customer{Name: "Maria Silva"}
	customer.ID = uuid.New()
	seller := &model.Seller{Name: "Ana Costa"}
	seller.ID = uuid.New()

	return pos.Snapshot{
		Items: []pos.CartItem{
			{SKU: "VES-001", ProductName: "Vestido Longo", Quantity: 2, UnitPrice: dec("149.90")},
			{SKU: "CIN-001", ProductName: "Cinto", Quantity: 1, UnitPrice: dec("39.90")},
		},
		Customer: customer,
		Seller:   seller,
		Delivery: &pos.DeliveryInfo{
			Fee: dec("12.50"),
			Address: model.SaleAddress{
				Street:       "Rua das Flores",
				Number:       "120",
				Neighborhood: "Centro",
				City:         "São Paulo",
				State:        "SP",
			},
			Notes: "Entregar após as 18h",
		},
		Subtotal: dec("339.70"),
		Total:    dec("352.20"),
	}
}

func paymentFixture() pos.FinalizeResult {
	return pos.FinalizeResult{
		Payments: []pos.Tender{
			{Method: model.PayCredit, Amount: dec("200.00")},
			{Method: model.PayCash, Amount: dec("160.00")},
		},
		AmountPaid: dec("360.00"),
		ChangeDue:  dec("7.80"),
	}
}

func TestBuildSale_NumberAndDisplayID(t *testing.T) {
	sale := buildSale(42, snapshotFixture(), paymentFixture(), time.Now(), "op-1")

	require.Equal(t, int64(42), sale.ID)
	require.Equal(t, "#00042", sale.DisplayID)
	require.Equal(t, model.SaleCompleted, sale.Status)
	require.Equal(t, "op-1", sale.CreatedBy)
}

func TestBuildSale_AmountsComeFromSnapshot(t *testing.T) {
	sale := buildSale(1, snapshotFixture(), paymentFixture(), time.Now(), "op-1")

	require.True(t, sale.TotalAmount.Equal(dec("339.70")))
	require.True(t, sale.DeliveryFee.Equal(dec("12.50")))
	require.True(t, sale.FinalAmount.Equal(dec("352.20")))
	require.True(t, sale.AmountPaid.Equal(dec("360.00")))
	require.True(t, sale.ChangeDue.Equal(dec("7.80")))
	require.True(t, sale.Discount.IsZero())
}

func TestBuildSale_SnapshotsPartyNames(t *testing.T) {
	snap := snapshotFixture()
	sale := buildSale(1, snap, paymentFixture(), time.Now(), "op-1")

	require.NotNil(t, sale.CustomerID)
	require.Equal(t, snap.Customer.ID, *sale.CustomerID)
	require.Equal(t, "Maria Silva", sale.CustomerName)
	require.NotNil(t, sale.SellerID)
	require.Equal(t, "Ana Costa", sale.SellerName)
}

func TestBuildSale_LinesKeepUnitPriceAtSaleTime(t *testing.T) {
	sale := buildSale(1, snapshotFixture(), paymentFixture(), time.Now(), "op-1")

	require.Len(t, sale.Items, 2)
	require.Equal(t, "VES-001", sale.Items[0].SKU)
	require.Equal(t, 2, sale.Items[0].Quantity)
	require.True(t, sale.Items[0].Price.Equal(dec("149.90")))
}

func TestBuildSale_PaymentsKeepTenderOrder(t *testing.T) {
	sale := buildSale(1, snapshotFixture(), paymentFixture(), time.Now(), "op-1")

	require.Len(t, sale.Payments, 2)
	require.Equal(t, 0, sale.Payments[0].Position)
	require.Equal(t, model.PayCredit, sale.Payments[0].Method)
	require.Equal(t, 1, sale.Payments[1].Position)
	require.Equal(t, model.PayCash, sale.Payments[1].Method)
}

func TestBuildSale_NoDeliveryLeavesAddressZero(t *testing.T) {
	snap := snapshotFixture()
	snap.Delivery = nil
	snap.Total = snap.Subtotal

	sale := buildSale(1, snap, paymentFixture(), time.Now(), "op-1")

	require.True(t, sale.DeliveryFee.IsZero())
	require.True(t, sale.DeliveryAddress.IsZero())
	require.Empty(t, sale.DeliveryNotes)
}

func TestBuildSale_WalkInCustomer(t *testing.T) {
	snap := snapshotFixture()
	snap.Customer = nil

	sale := buildSale(1, snap, paymentFixture(), time.Now(), "op-1")

	require.Nil(t, sale.CustomerID)
	require.Empty(t, sale.CustomerName)
}

func TestFormatDisplayID_PadsToFiveDigits(t *testing.T) {
	require.Equal(t, "#00001", model.FormatDisplayID(1))
	require.Equal(t, "#00999", model.FormatDisplayID(999))
	require.Equal(t, "#123456", model.FormatDisplayID(123456))
}
