package pos

import (
	"sync"

	"go-boutique-pos/internal/model"
)

// Session is the register state one operator holds between commits: the cart,
// at most one open payment reconciliation, and the last committed sale kept
// around for receipt display. Any cart mutation that can move the total must
// void the open payment session, since its total is frozen at open time.
type Session struct {
	mu       sync.Mutex
	cart     *Cart
	payment  *PaymentSession
	lastSale *model.Sale
}

func NewSession() *Session {
	return &Session{cart: NewCart()}
}

func (s *Session) Cart() *Cart {
	return s.cart
}

// BeginPayment opens a payment session frozen at the cart's current total,
// replacing any session already open.
func (s *Session) BeginPayment() *PaymentSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = NewPaymentSession(s.cart.Total())
	return s.payment
}

// Payment returns the open payment session, or nil.
func (s *Session) Payment() *PaymentSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment
}

// VoidPayment discards the open payment session, if any.
func (s *Session) VoidPayment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = nil
}

func (s *Session) SetLastSale(sale *model.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSale = sale
}

func (s *Session) LastSale() *model.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSale
}

// Clear resets the register for the next transaction: cart lines, customer
// and delivery go, the seller selection stays, the payment session and the
// last-sale reference are dropped.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.payment = nil
	s.lastSale = nil
}

// Registry hands out one Session per operator. Sessions are created on first
// use and live for the process lifetime.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the operator's session, creating it if needed.
func (r *Registry) Get(operatorID string) *Session {
	r.mu.RLock()
	sess, ok := r.sessions[operatorID]
	r.mu.RUnlock()
	if ok {
		return sess
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[operatorID]; ok {
		return sess
	}
	sess = NewSession()
	r.sessions[operatorID] = sess
	return sess
}
