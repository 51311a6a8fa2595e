package handler

import (
	"errors"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/pos"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PosHandler drives one register: the operator's cart, the payment
// reconciliation session and sale finalization. Every route below runs behind
// RequireAuth, so the operator id in Locals picks the session.
type PosHandler struct {
	registry     *pos.Registry
	catalog      service.CatalogService
	delivery     service.DeliveryService
	checkout     service.CheckoutService
	customerRepo repository.CustomerRepository
	sellerRepo   repository.SellerRepository
}

func NewPosHandler(registry *pos.Registry, catalog service.CatalogService, delivery service.DeliveryService, checkout service.CheckoutService, customerRepo repository.CustomerRepository, sellerRepo repository.SellerRepository) *PosHandler {
	return &PosHandler{
		registry:     registry,
		catalog:      catalog,
		delivery:     delivery,
		checkout:     checkout,
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
	}
}

func (h *PosHandler) session(c *fiber.Ctx) *pos.Session {
	return h.registry.Get(getUserID(c))
}

// cartView is the register screen state: lines plus the running totals and
// whatever payment session is open.
func cartView(sess *pos.Session) fiber.Map {
	snap := sess.Cart().Snapshot()
	view := fiber.Map{
		"items":    snap.Items,
		"customer": snap.Customer,
		"seller":   snap.Seller,
		"delivery": snap.Delivery,
		"subtotal": snap.Subtotal,
		"total":    snap.Total,
	}
	if payment := sess.Payment(); payment != nil {
		view["payment"] = paymentView(payment)
	}
	return view
}

func paymentView(p *pos.PaymentSession) fiber.Map {
	return fiber.Map{
		"total":        p.Total(),
		"payments":     p.Payments(),
		"total_paid":   p.TotalPaid(),
		"balance_due":  p.BalanceDue(),
		"change_due":   p.ChangeDue(),
		"suggested":    p.Suggested(),
		"can_finalize": p.CanFinalize(),
	}
}

// GetCart returns the register state
// GET /api/v1/pos/cart
func (h *PosHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(cartView(h.session(c)))
}

// AddItem puts one unit of a SKU in the cart
// POST /api/v1/pos/cart/items
func (h *PosHandler) AddItem(c *fiber.Ctx) error {
	var req struct {
		SKU string `json:"sku"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.SKU == "" {
		return c.Status(400).JSON(fiber.Map{"error": "SKU is required"})
	}

	product, err := h.catalog.GetProductBySKU(req.SKU)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Unknown SKU"})
	}
	variant := product.FindVariant(req.SKU)
	if variant == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Unknown SKU"})
	}

	sess := h.session(c)
	if err := sess.Cart().AddItem(product, *variant); err != nil {
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	// the cart total moved, any open payment session is stale
	sess.VoidPayment()

	return c.Status(201).JSON(cartView(sess))
}

// UpdateItem sets the quantity of a cart line
// PUT /api/v1/pos/cart/items/:sku
func (h *PosHandler) UpdateItem(c *fiber.Ctx) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sess := h.session(c)
	if err := sess.Cart().UpdateQuantity(c.Params("sku"), req.Quantity); err != nil {
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	sess.VoidPayment()

	return c.JSON(cartView(sess))
}

// RemoveItem deletes a cart line
// DELETE /api/v1/pos/cart/items/:sku
func (h *PosHandler) RemoveItem(c *fiber.Ctx) error {
	sess := h.session(c)
	sess.Cart().RemoveItem(c.Params("sku"))
	sess.VoidPayment()
	return c.JSON(cartView(sess))
}

// SetCustomer attaches a customer to the cart; an empty id detaches
// PUT /api/v1/pos/cart/customer
func (h *PosHandler) SetCustomer(c *fiber.Ctx) error {
	var req struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sess := h.session(c)
	if req.CustomerID == "" {
		sess.Cart().SetCustomer(nil)
		return c.JSON(cartView(sess))
	}

	id, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	sess.Cart().SetCustomer(customer)
	return c.JSON(cartView(sess))
}

// SetSeller selects the seller credited on the next sale
// PUT /api/v1/pos/cart/seller
func (h *PosHandler) SetSeller(c *fiber.Ctx) error {
	var req struct {
		SellerID string `json:"seller_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id, err := uuid.Parse(req.SellerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid seller ID"})
	}
	seller, err := h.sellerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Seller not found"})
	}

	sess := h.session(c)
	sess.Cart().SetSeller(seller)
	return c.JSON(cartView(sess))
}

// setDeliveryRequest selects an existing customer address by id, or registers
// a new one inline. The fee always comes from the neighborhood table.
type setDeliveryRequest struct {
	AddressID string         `json:"address_id"`
	Address   *model.Address `json:"address"`
	Notes     string         `json:"notes"`
}

// SetDelivery attaches a delivery to the cart
// PUT /api/v1/pos/cart/delivery
func (h *PosHandler) SetDelivery(c *fiber.Ctx) error {
	var req setDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sess := h.session(c)
	customer := sess.Cart().Customer()
	if customer == nil {
		return c.Status(409).JSON(fiber.Map{"error": "A customer must be selected before adding a delivery"})
	}

	var address model.Address
	switch {
	case req.AddressID != "":
		id, err := uuid.Parse(req.AddressID)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid address ID"})
		}
		found := false
		for _, a := range customer.Addresses {
			if a.ID == id {
				address = a
				found = true
				break
			}
		}
		if !found {
			return c.Status(404).JSON(fiber.Map{"error": "Address does not belong to the selected customer"})
		}
	case req.Address != nil:
		address = *req.Address
		if err := h.customerRepo.AddAddress(customer.ID, &address); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		customer.Addresses = append(customer.Addresses, address)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "address_id or address is required"})
	}

	fee, err := h.delivery.ResolveFee(address.Neighborhood)
	if err != nil {
		if errors.Is(err, service.ErrNoFeeForNeighborhood) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	sess.Cart().SetDelivery(&pos.DeliveryInfo{
		Fee:     fee.Fee,
		Address: address.ToSaleAddress(),
		Notes:   req.Notes,
	})
	sess.VoidPayment()

	return c.JSON(cartView(sess))
}

// RemoveDelivery detaches the delivery from the cart
// DELETE /api/v1/pos/cart/delivery
func (h *PosHandler) RemoveDelivery(c *fiber.Ctx) error {
	sess := h.session(c)
	sess.Cart().SetDelivery(nil)
	sess.VoidPayment()
	return c.JSON(cartView(sess))
}

// ClearCart resets the register for the next transaction
// POST /api/v1/pos/cart/clear
func (h *PosHandler) ClearCart(c *fiber.Ctx) error {
	sess := h.session(c)
	sess.Clear()
	return c.JSON(cartView(sess))
}

// BeginPayment opens a payment session frozen at the current cart total
// POST /api/v1/pos/payment
func (h *PosHandler) BeginPayment(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess.Cart().IsEmpty() {
		return c.Status(409).JSON(fiber.Map{"error": "Cannot open payment for an empty cart"})
	}
	payment := sess.BeginPayment()
	return c.Status(201).JSON(paymentView(payment))
}

// GetPayment returns the open payment session
// GET /api/v1/pos/payment
func (h *PosHandler) GetPayment(c *fiber.Ctx) error {
	payment := h.session(c).Payment()
	if payment == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No payment session is open"})
	}
	return c.JSON(paymentView(payment))
}

// VoidPayment discards the open payment session
// DELETE /api/v1/pos/payment
func (h *PosHandler) VoidPayment(c *fiber.Ctx) error {
	h.session(c).VoidPayment()
	return c.JSON(fiber.Map{"message": "Payment session voided"})
}

// AddTender appends one payment instalment
// POST /api/v1/pos/payment/tenders
func (h *PosHandler) AddTender(c *fiber.Ctx) error {
	var req struct {
		Method string          `json:"method"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	payment := h.session(c).Payment()
	if payment == nil {
		return c.Status(409).JSON(fiber.Map{"error": "No payment session is open"})
	}

	if err := payment.AddPayment(model.PaymentMethod(req.Method), req.Amount); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(paymentView(payment))
}

// RemoveTender deletes the instalment at the given position
// DELETE /api/v1/pos/payment/tenders/:index
func (h *PosHandler) RemoveTender(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tender index"})
	}

	payment := h.session(c).Payment()
	if payment == nil {
		return c.Status(409).JSON(fiber.Map{"error": "No payment session is open"})
	}

	if err := payment.RemovePayment(index); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(paymentView(payment))
}

// Finalize commits the sale: ledger write plus stock decrement, atomically
// POST /api/v1/pos/finalize
func (h *PosHandler) Finalize(c *fiber.Ctx) error {
	sess := h.session(c)

	sale, err := h.checkout.CommitSale(sess, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSeller),
			errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrPaymentNotOpen),
			errors.Is(err, pos.ErrBalanceDue):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock):
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	// New transaction starts clean; the seller selection survives Clear.
	sess.Cart().Clear()

	return c.Status(201).JSON(fiber.Map{"message": "Sale " + sale.DisplayID + " committed", "data": sale})
}

// GetReceipt returns the operator's last committed sale
// GET /api/v1/pos/receipt
func (h *PosHandler) GetReceipt(c *fiber.Ctx) error {
	sale := h.session(c).LastSale()
	if sale == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No sale committed on this register yet"})
	}
	return c.JSON(sale)
}
