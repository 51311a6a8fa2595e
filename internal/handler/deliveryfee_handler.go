package handler

import (
	"errors"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/internal/service"
	"go-boutique-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DeliveryFeeHandler struct {
	feeRepo  repository.DeliveryFeeRepository
	delivery service.DeliveryService
}

func NewDeliveryFeeHandler(feeRepo repository.DeliveryFeeRepository, delivery service.DeliveryService) *DeliveryFeeHandler {
	return &DeliveryFeeHandler{feeRepo: feeRepo, delivery: delivery}
}

// CreateFee registers a neighborhood delivery fee
// POST /api/v1/delivery-fees
func (h *DeliveryFeeHandler) CreateFee(c *fiber.Ctx) error {
	var fee model.DeliveryFee
	if err := c.BodyParser(&fee); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&fee); len(errs) > 0 {
		return validationError(c, errs)
	}

	fee.CreatedBy = getUserID(c)
	fee.UpdatedBy = getUserID(c)
	if err := h.feeRepo.Create(&fee); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Delivery fee created", "data": fee})
}

// UpdateFee changes a neighborhood's fee
// PUT /api/v1/delivery-fees/:id
func (h *DeliveryFeeHandler) UpdateFee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid fee ID"})
	}

	existing, err := h.feeRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Delivery fee not found"})
	}

	var req model.DeliveryFee
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationError(c, errs)
	}

	existing.Neighborhood = req.Neighborhood
	existing.City = req.City
	existing.Fee = req.Fee
	existing.UpdatedBy = getUserID(c)

	if err := h.feeRepo.Update(existing); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Delivery fee updated", "data": existing})
}

// DeleteFee removes a neighborhood fee
// DELETE /api/v1/delivery-fees/:id
func (h *DeliveryFeeHandler) DeleteFee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid fee ID"})
	}

	if _, err := h.feeRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Delivery fee not found"})
	}
	if err := h.feeRepo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Delivery fee deleted"})
}

// GetFees lists every registered neighborhood fee
// GET /api/v1/delivery-fees
func (h *DeliveryFeeHandler) GetFees(c *fiber.Ctx) error {
	fees, err := h.feeRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fees)
}

// ResolveFee looks up the fee for a neighborhood, as the register does
// GET /api/v1/delivery-fees/resolve?neighborhood=Centro
func (h *DeliveryFeeHandler) ResolveFee(c *fiber.Ctx) error {
	fee, err := h.delivery.ResolveFee(c.Query("neighborhood"))
	if err != nil {
		if errors.Is(err, service.ErrNoFeeForNeighborhood) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fee)
}
