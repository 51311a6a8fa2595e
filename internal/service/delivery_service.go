package service

import (
	"errors"
	"fmt"
	"strings"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
)

var ErrNoFeeForNeighborhood = errors.New("no delivery fee registered for neighborhood")

// DeliveryService resolves a delivery fee for an address. A delivery can only
// go on a cart when its neighborhood has a registered fee; there is no
// fallback to zero.
type DeliveryService interface {
	ResolveFee(neighborhood string) (*model.DeliveryFee, error)
	GetAllFees() ([]model.DeliveryFee, error)
}

type deliveryService struct {
	feeRepo repository.DeliveryFeeRepository
}

func NewDeliveryService(feeRepo repository.DeliveryFeeRepository) DeliveryService {
	return &deliveryService{feeRepo: feeRepo}
}

// ResolveFee finds the fee whose neighborhood matches, ignoring case and
// surrounding whitespace.
func (s *deliveryService) ResolveFee(neighborhood string) (*model.DeliveryFee, error) {
	wanted := strings.TrimSpace(neighborhood)
	if wanted == "" {
		return nil, fmt.Errorf("%w: neighborhood is empty", ErrNoFeeForNeighborhood)
	}

	fees, err := s.feeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	for i := range fees {
		if strings.EqualFold(strings.TrimSpace(fees[i].Neighborhood), wanted) {
			return &fees[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoFeeForNeighborhood, neighborhood)
}

func (s *deliveryService) GetAllFees() ([]model.DeliveryFee, error) {
	return s.feeRepo.FindAll()
}
