package handler

import (
	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SellerHandler struct {
	sellerRepo repository.SellerRepository
}

func NewSellerHandler(sellerRepo repository.SellerRepository) *SellerHandler {
	return &SellerHandler{sellerRepo: sellerRepo}
}

// CreateSeller registers a seller
// POST /api/v1/sellers
func (h *SellerHandler) CreateSeller(c *fiber.Ctx) error {
	var seller model.Seller
	if err := c.BodyParser(&seller); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&seller); len(errs) > 0 {
		return validationError(c, errs)
	}

	seller.CreatedBy = getUserID(c)
	seller.UpdatedBy = getUserID(c)
	if err := h.sellerRepo.Create(&seller); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Seller created", "data": seller})
}

// UpdateSeller updates a seller's registration data
// PUT /api/v1/sellers/:id
func (h *SellerHandler) UpdateSeller(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid seller ID"})
	}

	existing, err := h.sellerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Seller not found"})
	}

	var req model.Seller
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationError(c, errs)
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.EmergencyPhone = req.EmergencyPhone
	existing.BirthDate = req.BirthDate
	existing.Address = req.Address
	existing.UpdatedBy = getUserID(c)

	if err := h.sellerRepo.Update(existing); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Seller updated", "data": existing})
}

// DeleteSeller removes a seller
// DELETE /api/v1/sellers/:id
func (h *SellerHandler) DeleteSeller(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid seller ID"})
	}

	if _, err := h.sellerRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Seller not found"})
	}
	if err := h.sellerRepo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Seller deleted"})
}

// GetSellers lists all sellers
// GET /api/v1/sellers
func (h *SellerHandler) GetSellers(c *fiber.Ctx) error {
	sellers, err := h.sellerRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sellers)
}

// GetSeller returns one seller
// GET /api/v1/sellers/:id
func (h *SellerHandler) GetSeller(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid seller ID"})
	}

	seller, err := h.sellerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Seller not found"})
	}
	return c.JSON(seller)
}
