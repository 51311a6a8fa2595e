package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-boutique-pos/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddPayment_Validation(t *testing.T) {
	p := NewPaymentSession(dec("100.00"))

	require.ErrorIs(t, p.AddPayment(model.PayCash, decimal.Zero), ErrAmountNotPositive)
	require.ErrorIs(t, p.AddPayment(model.PayCash, dec("-5.00")), ErrAmountNotPositive)
	require.ErrorIs(t, p.AddPayment("Cheque", dec("50.00")), ErrUnknownMethod)
	require.Empty(t, p.Payments())
}

func TestBalanceAndChange(t *testing.T) {
	p := NewPaymentSession(dec("100.00"))

	require.True(t, p.BalanceDue().Equal(dec("100.00")))
	require.True(t, p.ChangeDue().IsZero())
	require.False(t, p.CanFinalize())

	require.NoError(t, p.AddPayment(model.PayCredit, dec("60.00")))
	require.True(t, p.BalanceDue().Equal(dec("40.00")))
	require.True(t, p.Suggested().Equal(dec("40.00")))

	require.NoError(t, p.AddPayment(model.PayPix, dec("40.00")))
	require.True(t, p.BalanceDue().IsZero())
	require.True(t, p.ChangeDue().IsZero())
	require.True(t, p.CanFinalize())
}

func TestOverpaymentYieldsChange(t *testing.T) {
	p := NewPaymentSession(dec("80.00"))
	require.NoError(t, p.AddPayment(model.PayCash, dec("100.00")))

	// balance is floored at zero, the excess shows up as change
	require.True(t, p.BalanceDue().IsZero())
	require.True(t, p.ChangeDue().Equal(dec("20.00")))
	require.True(t, p.CanFinalize())
}

func TestRemovePayment_ByPosition(t *testing.T) {
	p := NewPaymentSession(dec("100.00"))
	require.NoError(t, p.AddPayment(model.PayCredit, dec("60.00")))
	require.NoError(t, p.AddPayment(model.PayCash, dec("40.00")))

	require.ErrorIs(t, p.RemovePayment(2), ErrPaymentIndex)
	require.ErrorIs(t, p.RemovePayment(-1), ErrPaymentIndex)

	require.NoError(t, p.RemovePayment(0))
	payments := p.Payments()
	require.Len(t, payments, 1)
	require.Equal(t, model.PayCash, payments[0].Method)
	require.True(t, p.BalanceDue().Equal(dec("60.00")))
}

func TestFinalize_RequiresFullCoverage(t *testing.T) {
	p := NewPaymentSession(dec("100.00"))
	require.NoError(t, p.AddPayment(model.PayDebit, dec("99.99")))

	_, err := p.Finalize()
	require.ErrorIs(t, err, ErrBalanceDue)

	require.NoError(t, p.AddPayment(model.PayCash, dec("0.01")))
	result, err := p.Finalize()
	require.NoError(t, err)
	require.Len(t, result.Payments, 2)
	require.True(t, result.AmountPaid.Equal(dec("100.00")))
	require.True(t, result.ChangeDue.IsZero())
}

func TestFinalize_PreservesTenderOrder(t *testing.T) {
	p := NewPaymentSession(dec("150.00"))
	require.NoError(t, p.AddPayment(model.PayPix, dec("50.00")))
	require.NoError(t, p.AddPayment(model.PayCredit, dec("50.00")))
	require.NoError(t, p.AddPayment(model.PayCash, dec("50.00")))

	result, err := p.Finalize()
	require.NoError(t, err)
	require.Equal(t, model.PayPix, result.Payments[0].Method)
	require.Equal(t, model.PayCredit, result.Payments[1].Method)
	require.Equal(t, model.PayCash, result.Payments[2].Method)
}

func TestSession_BeginPaymentFreezesTotal(t *testing.T) {
	sess := NewSession()
	p := testProduct("Vestido", "100.00", variant("VES-001", 10))
	require.NoError(t, sess.Cart().AddItem(p, p.Variants[0]))

	payment := sess.BeginPayment()
	require.True(t, payment.Total().Equal(dec("100.00")))

	// later cart growth does not move the frozen total
	require.NoError(t, sess.Cart().AddItem(p, p.Variants[0]))
	require.True(t, payment.Total().Equal(dec("100.00")))
}

func TestSession_ClearDropsPaymentAndReceipt(t *testing.T) {
	sess := NewSession()
	p := testProduct("Vestido", "100.00", variant("VES-001", 10))
	require.NoError(t, sess.Cart().AddItem(p, p.Variants[0]))
	sess.BeginPayment()
	sess.SetLastSale(&model.Sale{ID: 1})

	sess.Clear()

	require.Nil(t, sess.Payment())
	require.Nil(t, sess.LastSale())
	require.True(t, sess.Cart().IsEmpty())
}

func TestRegistry_OneSessionPerOperator(t *testing.T) {
	registry := NewRegistry()

	a := registry.Get("op-a")
	b := registry.Get("op-b")
	require.NotSame(t, a, b)
	require.Same(t, a, registry.Get("op-a"))
}
