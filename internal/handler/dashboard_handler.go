package handler

import (
	"go-boutique-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard service.DashboardService
}

func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// rangeDays maps the UI range selector to a day count.
func rangeDays(c *fiber.Ctx) int {
	switch c.Query("range", "7d") {
	case "1m":
		return 30
	case "3m":
		return 90
	case "6m":
		return 180
	case "12m":
		return 365
	default:
		return 7
	}
}

// GetStats returns the back-office overview numbers
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// GetRevenueSeries returns daily revenue over the selected range
// GET /api/v1/dashboard/revenue?range=7d
func (h *DashboardHandler) GetRevenueSeries(c *fiber.Ctx) error {
	series, err := h.dashboard.GetRevenueSeries(rangeDays(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(series)
}

// GetRevenueByMethod returns revenue split per payment method
// GET /api/v1/dashboard/revenue-by-method?range=7d
func (h *DashboardHandler) GetRevenueByMethod(c *fiber.Ctx) error {
	breakdown, err := h.dashboard.GetRevenueByMethod(rangeDays(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(breakdown)
}

// GetTopSelling returns the best selling products by units sold
// GET /api/v1/dashboard/top-selling?limit=5
func (h *DashboardHandler) GetTopSelling(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	top, err := h.dashboard.GetTopSellingProducts(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(top)
}
