package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-boutique-pos/internal/model"
)

func failedTags(errs []*ErrorResponse) map[string]string {
	tags := make(map[string]string, len(errs))
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	return tags
}

func TestValidateStruct_AcceptsWellFormedProduct(t *testing.T) {
	product := &model.Product{
		Name:      "Vestido Midi",
		BasePrice: decimal.RequireFromString("149.90"),
		Variants: []model.ProductVariant{
			{SKU: "VES-001", Color: "Preto", Size: "M", Stock: 4},
		},
	}
	require.Empty(t, ValidateStruct(product))
}

func TestValidateStruct_RejectsNonPositiveBasePrice(t *testing.T) {
	product := &model.Product{
		Name:      "Vestido Midi",
		BasePrice: decimal.RequireFromString("-1.00"),
		Variants: []model.ProductVariant{
			{SKU: "VES-001", Stock: 4},
		},
	}
	tags := failedTags(ValidateStruct(product))
	require.Equal(t, "amount_positive", tags["Product.BasePrice"])

	// Zero is not a sellable price either
	product.BasePrice = decimal.Zero
	tags = failedTags(ValidateStruct(product))
	require.Equal(t, "amount_positive", tags["Product.BasePrice"])
}

func TestValidateStruct_RejectsNegativeCostPrice(t *testing.T) {
	product := &model.Product{
		Name:      "Vestido Midi",
		BasePrice: decimal.RequireFromString("149.90"),
		CostPrice: decimal.RequireFromString("-0.01"),
		Variants: []model.ProductVariant{
			{SKU: "VES-001", Stock: 4},
		},
	}
	tags := failedTags(ValidateStruct(product))
	require.Equal(t, "amount_gte_zero", tags["Product.CostPrice"])
}

func TestValidateStruct_DeliveryFeeMayBeZeroButNotNegative(t *testing.T) {
	fee := &model.DeliveryFee{
		Neighborhood: "Centro",
		City:         "São Paulo",
		Fee:          decimal.Zero,
	}
	require.Empty(t, ValidateStruct(fee))

	fee.Fee = decimal.RequireFromString("-5.00")
	tags := failedTags(ValidateStruct(fee))
	require.Equal(t, "amount_gte_zero", tags["DeliveryFee.Fee"])
}
