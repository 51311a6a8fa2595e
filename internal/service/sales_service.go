package service

import (
	"errors"

	"gorm.io/gorm"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
)

// SalesService is the read side of the sales ledger: filtered history listing
// and detail lookup. Mutations go through CheckoutService.
type SalesService interface {
	ListSales(filter repository.SaleFilter) ([]model.Sale, error)
	GetSale(id int64) (*model.Sale, error)
}

type salesService struct {
	saleRepo repository.SaleRepository
}

func NewSalesService(saleRepo repository.SaleRepository) SalesService {
	return &salesService{saleRepo: saleRepo}
}

func (s *salesService) ListSales(filter repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.FindAll(filter)
}

func (s *salesService) GetSale(id int64) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}
