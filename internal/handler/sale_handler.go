package handler

import (
	"errors"
	"strconv"
	"time"

	"go-boutique-pos/internal/repository"
	"go-boutique-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	sales    service.SalesService
	checkout service.CheckoutService
}

func NewSaleHandler(sales service.SalesService, checkout service.CheckoutService) *SaleHandler {
	return &SaleHandler{sales: sales, checkout: checkout}
}

func parseSaleID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// GetSales lists the sales history, newest first
// GET /api/v1/sales?from=2024-01-01&to=2024-01-31&customer_id=...&product_id=...
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	var filter repository.SaleFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'from' date, use YYYY-MM-DD"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'to' date, use YYYY-MM-DD"})
		}
		// inclusive upper bound: the whole last day
		end := t.AddDate(0, 0, 1)
		filter.To = &end
	}
	if cid := c.Query("customer_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer_id"})
		}
		filter.CustomerID = &id
	}
	if pid := c.Query("product_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product_id"})
		}
		filter.ProductID = &id
	}

	sales, err := h.sales.ListSales(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetSale returns one sale with its lines and payments
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseSaleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.sales.GetSale(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}

// CancelSale restocks a completed sale and marks it cancelled
// POST /api/v1/sales/:id/cancel
func (h *SaleHandler) CancelSale(c *fiber.Ctx) error {
	id, err := parseSaleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.checkout.CancelSale(id, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSaleNotCompleted):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale " + sale.DisplayID + " cancelled", "data": sale})
}

// DeleteSale removes a sale from the ledger, restocking first when needed
// DELETE /api/v1/sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseSaleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.checkout.DeleteSale(id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale deleted"})
}
