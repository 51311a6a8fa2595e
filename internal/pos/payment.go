package pos

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"go-boutique-pos/internal/model"
)

// Error definitions
var (
	ErrAmountNotPositive = errors.New("payment amount must be greater than zero")
	ErrUnknownMethod     = errors.New("unknown payment method")
	ErrPaymentIndex      = errors.New("no payment at this position")
	ErrBalanceDue        = errors.New("payments do not cover the sale total")
)

// Tender is one payment instalment toward the session total.
type Tender struct {
	Method model.PaymentMethod `json:"method"`
	Amount decimal.Decimal     `json:"amount"`
}

// PaymentSession accumulates an ordered sequence of tenders against a total
// fixed when the session is opened. It is the gate for sale commit: the sale
// can only be finalized once the balance due reaches exactly zero.
type PaymentSession struct {
	mu      sync.Mutex
	total   decimal.Decimal
	tenders []Tender
}

// NewPaymentSession opens a reconciliation session for the given total.
func NewPaymentSession(total decimal.Decimal) *PaymentSession {
	return &PaymentSession{total: total}
}

// AddPayment appends a tender. Zero or negative amounts and unknown methods
// are rejected before insertion.
func (p *PaymentSession) AddPayment(method model.PaymentMethod, amount decimal.Decimal) error {
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountNotPositive
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tenders = append(p.tenders, Tender{Method: method, Amount: amount})
	return nil
}

// RemovePayment deletes the tender at the given position (tender order).
func (p *PaymentSession) RemovePayment(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.tenders) {
		return ErrPaymentIndex
	}
	p.tenders = append(p.tenders[:index], p.tenders[index+1:]...)
	return nil
}

func (p *PaymentSession) Total() decimal.Decimal {
	return p.total
}

// Payments returns a copy of the tenders in insertion order.
func (p *PaymentSession) Payments() []Tender {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Tender, len(p.tenders))
	copy(out, p.tenders)
	return out
}

// TotalPaid is the exact sum of all tender amounts.
func (p *PaymentSession) TotalPaid() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPaidLocked()
}

func (p *PaymentSession) totalPaidLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range p.tenders {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// BalanceDue is the remaining unpaid amount, floored at zero.
func (p *PaymentSession) BalanceDue() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return decimal.Max(decimal.Zero, p.total.Sub(p.totalPaidLocked()))
}

// ChangeDue is the overpayment to hand back, floored at zero.
func (p *PaymentSession) ChangeDue() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return decimal.Max(decimal.Zero, p.totalPaidLocked().Sub(p.total))
}

// Suggested is the amount pre-seeded for the next tender, so a split payment
// can be completed with one keystroke: whatever is still due.
func (p *PaymentSession) Suggested() decimal.Decimal {
	return p.BalanceDue()
}

// CanFinalize reports whether the tenders fully cover the total.
func (p *PaymentSession) CanFinalize() bool {
	return p.BalanceDue().IsZero()
}

// FinalizeResult is the payment breakdown handed to the commit protocol.
type FinalizeResult struct {
	Payments   []Tender
	AmountPaid decimal.Decimal
	ChangeDue  decimal.Decimal
}

// Finalize returns the reconciled breakdown. It persists nothing itself and
// fails while any balance remains due.
func (p *PaymentSession) Finalize() (FinalizeResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	paid := p.totalPaidLocked()
	due := p.total.Sub(paid)
	if due.GreaterThan(decimal.Zero) {
		return FinalizeResult{}, fmt.Errorf("%w: missing %s", ErrBalanceDue, due.StringFixed(2))
	}

	tenders := make([]Tender, len(p.tenders))
	copy(tenders, p.tenders)

	return FinalizeResult{
		Payments:   tenders,
		AmountPaid: paid,
		ChangeDue:  decimal.Max(decimal.Zero, paid.Sub(p.total)),
	}, nil
}
