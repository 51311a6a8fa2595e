package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-boutique-pos/internal/model"
)

type stubFeeRepo struct {
	fees []model.DeliveryFee
}

func (r *stubFeeRepo) Create(fee *model.DeliveryFee) error { return nil }
func (r *stubFeeRepo) FindAll() ([]model.DeliveryFee, error) {
	return r.fees, nil
}
func (r *stubFeeRepo) FindByID(id uuid.UUID) (*model.DeliveryFee, error) { return nil, nil }
func (r *stubFeeRepo) Update(fee *model.DeliveryFee) error               { return nil }
func (r *stubFeeRepo) Delete(id uuid.UUID) error                         { return nil }

func feeTable() *stubFeeRepo {
	return &stubFeeRepo{fees: []model.DeliveryFee{
		{Neighborhood: "Centro", City: "São Paulo", Fee: decimal.RequireFromString("10.00")},
		{Neighborhood: "Jardim América", City: "São Paulo", Fee: decimal.RequireFromString("15.00")},
	}}
}

func TestResolveFee_ExactMatch(t *testing.T) {
	svc := NewDeliveryService(feeTable())

	fee, err := svc.ResolveFee("Centro")
	require.NoError(t, err)
	require.True(t, fee.Fee.Equal(decimal.RequireFromString("10.00")))
}

func TestResolveFee_IgnoresCaseAndWhitespace(t *testing.T) {
	svc := NewDeliveryService(feeTable())

	fee, err := svc.ResolveFee("  jardim américa  ")
	require.NoError(t, err)
	require.True(t, fee.Fee.Equal(decimal.RequireFromString("15.00")))
}

func TestResolveFee_NoMatch(t *testing.T) {
	svc := NewDeliveryService(feeTable())

	_, err := svc.ResolveFee("Vila Madalena")
	require.ErrorIs(t, err, ErrNoFeeForNeighborhood)
}

func TestResolveFee_EmptyNeighborhood(t *testing.T) {
	svc := NewDeliveryService(feeTable())

	_, err := svc.ResolveFee("   ")
	require.ErrorIs(t, err, ErrNoFeeForNeighborhood)
}
