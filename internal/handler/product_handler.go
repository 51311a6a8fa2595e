package handler

import (
	"errors"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// CreateProduct registers a product with its variants
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.catalog.CreateProduct(&product, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrSKUExists) || errors.Is(err, service.ErrDuplicateSKU) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProduct replaces a product's fields and variant list
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.catalog.UpdateProduct(id, &product, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductMissing):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSKUExists), errors.Is(err, service.ErrDuplicateSKU):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

// DeleteProduct removes a product and its variants
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductMissing) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetProducts lists the whole catalog
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalog.GetAllProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProductByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}

// GetProductBySKU resolves a scanned SKU to its product
// GET /api/v1/products/sku/:sku
func (h *ProductHandler) GetProductBySKU(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductBySKU(c.Params("sku"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}
