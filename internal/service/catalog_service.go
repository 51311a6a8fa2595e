package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/internal/ws"
	"go-boutique-pos/pkg/validator"
)

var (
	ErrSKUExists      = errors.New("SKU already exists")
	ErrDuplicateSKU   = errors.New("duplicate SKU in variant list")
	ErrProductMissing = errors.New("product not found")
)

// CatalogService owns product and variant CRUD. SKUs are unique across the
// whole catalog, not just within one product, because the SKU is the global
// cart-line and stock identity.
type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetProductBySKU(sku string) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
	log         *logrus.Entry
}

func NewCatalogService(productRepo repository.ProductRepository, hub *ws.Hub, log *logrus.Entry) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		wsHub:       hub,
		log:         log,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	// 1. Struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	// 2. SKU uniqueness, inside the payload and against the catalog
	if err := s.checkSKUs(req, uuid.Nil); err != nil {
		return err
	}

	// 3. Audit fields
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "stock",
		Action:  "product_created",
		Payload: productPayload(req),
		Message: fmt.Sprintf("Product '%s' created", req.Name),
	})
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductMissing
		}
		return nil, err
	}

	if err := s.checkSKUs(req, id); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.BasePrice = req.BasePrice
	existing.CostPrice = req.CostPrice
	existing.UpdatedBy = userID

	// Re-key the incoming variants to this product
	existing.Variants = req.Variants
	for i := range existing.Variants {
		existing.Variants[i].ProductID = existing.ID
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "stock",
		Action:  "product_updated",
		Payload: productPayload(existing),
		Message: fmt.Sprintf("Product '%s' updated", existing.Name),
	})
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductMissing
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.log.WithField("product", product.Name).Info("product deleted")

	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "stock",
		Action:  "product_deleted",
		Message: fmt.Sprintf("Product '%s' deleted", product.Name),
	})
	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductMissing
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProductBySKU(sku string) (*model.Product, error) {
	product, err := s.productRepo.FindProductBySKU(sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductMissing
		}
		return nil, err
	}
	return product, nil
}

// checkSKUs rejects duplicates inside the payload and SKUs already owned by a
// different product. ownID is uuid.Nil on create.
func (s *catalogService) checkSKUs(req *model.Product, ownID uuid.UUID) error {
	seen := make(map[string]bool, len(req.Variants))
	for _, v := range req.Variants {
		if seen[v.SKU] {
			return fmt.Errorf("%w: %s", ErrDuplicateSKU, v.SKU)
		}
		seen[v.SKU] = true

		existing, err := s.productRepo.FindVariantBySKU(v.SKU)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if existing.ProductID != ownID {
			return fmt.Errorf("%w: %s", ErrSKUExists, v.SKU)
		}
	}
	return nil
}

func productPayload(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":         p.ID,
		"name":       p.Name,
		"base_price": p.BasePrice,
		"variants":   p.Variants,
	}
}
