package service

import (
	"time"

	"github.com/shopspring/decimal"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
)

// Variants at or below this level show up in the low-stock count.
const lowStockThreshold = 5

// DashboardStats is the back-office overview.
type DashboardStats struct {
	TotalProducts  int             `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	TodaySales     int             `json:"today_sales"`
}

type DashboardService interface {
	GetDashboardStats() (*DashboardStats, error)
	GetRevenueSeries(days int) ([]DailyRevenue, error)
	GetRevenueByMethod(days int) (map[model.PaymentMethod]decimal.Decimal, error)
	GetTopSellingProducts(limit int) ([]ProductSales, error)
}

type dashboardService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) DashboardService {
	return &dashboardService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:  len(products),
		TotalValuation: decimal.Zero,
		TodayRevenue:   decimal.Zero,
	}
	for _, product := range products {
		for _, variant := range product.Variants {
			if variant.Stock <= lowStockThreshold {
				stats.LowStockCount++
			}
			stats.TotalValuation = stats.TotalValuation.Add(
				product.CostPrice.Mul(decimal.NewFromInt(int64(variant.Stock))))
		}
	}

	dayStart := startOfDay(time.Now())
	todaySales, err := s.saleRepo.FindAll(repository.SaleFilter{From: &dayStart})
	if err != nil {
		return nil, err
	}
	for _, sale := range todaySales {
		if sale.Status != model.SaleCompleted {
			continue
		}
		stats.TodayRevenue = stats.TodayRevenue.Add(sale.FinalAmount)
		stats.TodaySales++
	}

	return stats, nil
}

func (s *dashboardService) GetRevenueSeries(days int) ([]DailyRevenue, error) {
	sales, err := s.salesSince(days)
	if err != nil {
		return nil, err
	}
	return RevenueByDay(sales), nil
}

func (s *dashboardService) GetRevenueByMethod(days int) (map[model.PaymentMethod]decimal.Decimal, error) {
	sales, err := s.salesSince(days)
	if err != nil {
		return nil, err
	}
	return RevenueByMethod(sales), nil
}

func (s *dashboardService) GetTopSellingProducts(limit int) ([]ProductSales, error) {
	sales, err := s.saleRepo.FindAll(repository.SaleFilter{})
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return TopSellingProducts(sales, products, limit), nil
}

// startOfDay returns midnight of t's day in t's own location. Truncating to a
// multiple of 24h would give the UTC day boundary instead, which is hours off
// for the store's timezone.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *dashboardService) salesSince(days int) ([]model.Sale, error) {
	from := time.Now().AddDate(0, 0, -days)
	return s.saleRepo.FindAll(repository.SaleFilter{From: &from})
}
