package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"go-boutique-pos/internal/model"
)

// Pure reducers over the sales ledger. Only completed sales count toward any
// aggregate; cancelled and exchange sales are excluded everywhere.

// ProductSales pairs a product variant with the units it moved.
type ProductSales struct {
	Product      model.Product `json:"product"`
	VariantSKU   string        `json:"variant_sku"`
	QuantitySold int           `json:"quantity_sold"`
}

// TopSellingProducts ranks variants by units sold across completed sales.
func TopSellingProducts(sales []model.Sale, products []model.Product, limit int) []ProductSales {
	skuCounts := make(map[string]int)
	for _, sale := range sales {
		if sale.Status != model.SaleCompleted {
			continue
		}
		for _, item := range sale.Items {
			skuCounts[item.SKU] += item.Quantity
		}
	}

	var ranked []ProductSales
	for sku, count := range skuCounts {
		for _, product := range products {
			if product.FindVariant(sku) == nil {
				continue
			}
			ranked = append(ranked, ProductSales{
				Product:      product,
				VariantSKU:   sku,
				QuantitySold: count,
			})
			break
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].QuantitySold != ranked[j].QuantitySold {
			return ranked[i].QuantitySold > ranked[j].QuantitySold
		}
		return ranked[i].VariantSKU < ranked[j].VariantSKU
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RevenueByMethod splits completed-sale tender amounts per payment method.
// Splitting by tender, not by sale, keeps split payments attributed exactly.
func RevenueByMethod(sales []model.Sale) map[model.PaymentMethod]decimal.Decimal {
	out := make(map[model.PaymentMethod]decimal.Decimal, len(model.PaymentMethods))
	for _, method := range model.PaymentMethods {
		out[method] = decimal.Zero
	}
	for _, sale := range sales {
		if sale.Status != model.SaleCompleted {
			continue
		}
		for _, payment := range sale.Payments {
			out[payment.Method] = out[payment.Method].Add(payment.Amount)
		}
	}
	return out
}

// DailyRevenue is one point of the sales-per-day series.
type DailyRevenue struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// RevenueByDay buckets completed sales per calendar day, sorted ascending.
func RevenueByDay(sales []model.Sale) []DailyRevenue {
	byDay := make(map[string]*DailyRevenue)
	for _, sale := range sales {
		if sale.Status != model.SaleCompleted {
			continue
		}
		day := sale.Timestamp.Format("2006-01-02")
		bucket, ok := byDay[day]
		if !ok {
			bucket = &DailyRevenue{Date: day, Revenue: decimal.Zero}
			byDay[day] = bucket
		}
		bucket.Revenue = bucket.Revenue.Add(sale.FinalAmount)
		bucket.Count++
	}

	out := make([]DailyRevenue, 0, len(byDay))
	for _, bucket := range byDay {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
