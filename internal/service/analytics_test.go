package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-boutique-pos/internal/model"
)

func catalogFixture() []model.Product {
	vestido := model.Product{
		Name:     "Vestido Longo",
		Variants: []model.ProductVariant{{SKU: "VES-001", Stock: 10}},
	}
	vestido.ID = uuid.New()
	calca := model.Product{
		Name:     "Calça Jeans",
		Variants: []model.ProductVariant{{SKU: "CAL-001", Stock: 10}, {SKU: "CAL-002", Stock: 4}},
	}
	calca.ID = uuid.New()
	return []model.Product{vestido, calca}
}

func completedSale(day string, amount string, items []model.SaleItem, payments []model.Payment) model.Sale {
	ts, _ := time.Parse("2006-01-02", day)
	return model.Sale{
		Status:      model.SaleCompleted,
		Timestamp:   ts,
		FinalAmount: decimal.RequireFromString(amount),
		Items:       items,
		Payments:    payments,
	}
}

func TestTopSellingProducts_RanksByUnits(t *testing.T) {
	products := catalogFixture()
	sales := []model.Sale{
		completedSale("2026-08-01", "100.00", []model.SaleItem{{SKU: "VES-001", Quantity: 1}}, nil),
		completedSale("2026-08-02", "200.00", []model.SaleItem{{SKU: "CAL-001", Quantity: 3}}, nil),
		completedSale("2026-08-03", "150.00", []model.SaleItem{{SKU: "VES-001", Quantity: 1}}, nil),
	}

	top := TopSellingProducts(sales, products, 10)
	require.Len(t, top, 2)
	require.Equal(t, "CAL-001", top[0].VariantSKU)
	require.Equal(t, 3, top[0].QuantitySold)
	require.Equal(t, "Calça Jeans", top[0].Product.Name)
	require.Equal(t, "VES-001", top[1].VariantSKU)
	require.Equal(t, 2, top[1].QuantitySold)
}

func TestTopSellingProducts_ExcludesCancelledSales(t *testing.T) {
	products := catalogFixture()
	cancelled := completedSale("2026-08-01", "500.00", []model.SaleItem{{SKU: "VES-001", Quantity: 5}}, nil)
	cancelled.Status = model.SaleCancelled

	top := TopSellingProducts([]model.Sale{cancelled}, products, 10)
	require.Empty(t, top)
}

func TestTopSellingProducts_SkipsOrphanSKUs(t *testing.T) {
	products := catalogFixture()
	sales := []model.Sale{
		completedSale("2026-08-01", "50.00", []model.SaleItem{{SKU: "GONE-001", Quantity: 2}}, nil),
	}

	// a SKU whose product was deleted simply does not rank
	top := TopSellingProducts(sales, products, 10)
	require.Empty(t, top)
}

func TestTopSellingProducts_TruncatesToLimit(t *testing.T) {
	products := catalogFixture()
	sales := []model.Sale{
		completedSale("2026-08-01", "10.00", []model.SaleItem{
			{SKU: "VES-001", Quantity: 1},
			{SKU: "CAL-001", Quantity: 1},
			{SKU: "CAL-002", Quantity: 1},
		}, nil),
	}

	top := TopSellingProducts(sales, products, 2)
	require.Len(t, top, 2)
}

func TestRevenueByMethod_SplitsPerTender(t *testing.T) {
	sales := []model.Sale{
		completedSale("2026-08-01", "100.00", nil, []model.Payment{
			{Method: model.PayCredit, Amount: decimal.RequireFromString("60.00")},
			{Method: model.PayCash, Amount: decimal.RequireFromString("40.00")},
		}),
		completedSale("2026-08-02", "50.00", nil, []model.Payment{
			{Method: model.PayPix, Amount: decimal.RequireFromString("50.00")},
		}),
	}

	byMethod := RevenueByMethod(sales)
	require.True(t, byMethod[model.PayCredit].Equal(decimal.RequireFromString("60.00")))
	require.True(t, byMethod[model.PayCash].Equal(decimal.RequireFromString("40.00")))
	require.True(t, byMethod[model.PayPix].Equal(decimal.RequireFromString("50.00")))
	// every accepted method is present even with no tenders
	require.True(t, byMethod[model.PayDebit].IsZero())
}

func TestRevenueByDay_BucketsAndSorts(t *testing.T) {
	sales := []model.Sale{
		completedSale("2026-08-02", "50.00", nil, nil),
		completedSale("2026-08-01", "100.00", nil, nil),
		completedSale("2026-08-01", "25.50", nil, nil),
	}
	cancelled := completedSale("2026-08-01", "999.00", nil, nil)
	cancelled.Status = model.SaleCancelled
	sales = append(sales, cancelled)

	series := RevenueByDay(sales)
	require.Len(t, series, 2)
	require.Equal(t, "2026-08-01", series[0].Date)
	require.True(t, series[0].Revenue.Equal(decimal.RequireFromString("125.50")))
	require.Equal(t, 2, series[0].Count)
	require.Equal(t, "2026-08-02", series[1].Date)
	require.Equal(t, 1, series[1].Count)
}
