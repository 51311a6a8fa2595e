package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
)

type stubSaleRepo struct {
	sales      []model.Sale
	lastFilter repository.SaleFilter
}

func (r *stubSaleRepo) NextNumber(tx *gorm.DB) (int64, error)            { return 0, nil }
func (r *stubSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error       { return nil }
func (r *stubSaleRepo) FindByID(id int64) (*model.Sale, error)           { return nil, gorm.ErrRecordNotFound }
func (r *stubSaleRepo) LockByID(tx *gorm.DB, id int64) (*model.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubSaleRepo) UpdateStatus(tx *gorm.DB, id int64, status model.SaleStatus, updatedBy string) error {
	return nil
}
func (r *stubSaleRepo) Delete(tx *gorm.DB, id int64) error { return nil }

func (r *stubSaleRepo) FindAll(filter repository.SaleFilter) ([]model.Sale, error) {
	r.lastFilter = filter
	return r.sales, nil
}

type stubProductRepo struct {
	products []model.Product
}

func (r *stubProductRepo) Create(product *model.Product) error { return nil }
func (r *stubProductRepo) FindAll() ([]model.Product, error)   { return r.products, nil }
func (r *stubProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductRepo) FindVariantBySKU(sku string) (*model.ProductVariant, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductRepo) FindProductBySKU(sku string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductRepo) Update(product *model.Product) error { return nil }
func (r *stubProductRepo) Delete(id uuid.UUID) error           { return nil }
func (r *stubProductRepo) LockVariantBySKU(tx *gorm.DB, sku string) (*model.ProductVariant, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductRepo) UpdateVariantStock(tx *gorm.DB, variantID uint, newStock int) error {
	return nil
}

func TestStartOfDay_UsesLocalMidnight(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, time.September, 1, 1, 30, 0, 0, loc)

	got := startOfDay(now)

	require.True(t, got.Equal(time.Date(2026, time.September, 1, 0, 0, 0, 0, loc)))
	require.Equal(t, loc, got.Location())
	// The 24h truncation lands on the previous local evening in this zone
	require.False(t, now.Truncate(24*time.Hour).Equal(got))
}

func TestStartOfDay_IdempotentAtMidnight(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	midnight := time.Date(2026, time.September, 1, 0, 0, 0, 0, loc)
	require.True(t, startOfDay(midnight).Equal(midnight))
}

func TestGetDashboardStats_CountsAndTodayWindow(t *testing.T) {
	saleRepo := &stubSaleRepo{sales: []model.Sale{
		{ID: 1, Status: model.SaleCompleted, FinalAmount: dec("149.90")},
		{ID: 2, Status: model.SaleCompleted, FinalAmount: dec("50.10")},
		{ID: 3, Status: model.SaleCancelled, FinalAmount: dec("999.00")},
	}}
	productRepo := &stubProductRepo{products: []model.Product{
		{
			Name:      "Vestido Midi",
			CostPrice: dec("80.00"),
			Variants: []model.ProductVariant{
				{SKU: "VES-001", Stock: 2},
				{SKU: "VES-002", Stock: 10},
			},
		},
	}}

	svc := NewDashboardService(saleRepo, productRepo)
	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)

	require.Equal(t, 1, stats.TotalProducts)
	require.Equal(t, 1, stats.LowStockCount)
	require.True(t, stats.TotalValuation.Equal(dec("960.00")))

	// Cancelled sales stay out of today's figures
	require.Equal(t, 2, stats.TodaySales)
	require.True(t, stats.TodayRevenue.Equal(dec("200.00")))

	// "Today" starts at the local midnight, not the UTC one
	require.NotNil(t, saleRepo.lastFilter.From)
	from := *saleRepo.lastFilter.From
	require.True(t, from.Equal(startOfDay(time.Now())))
	require.Equal(t, 0, from.Hour())
	require.Equal(t, 0, from.Minute())
}
