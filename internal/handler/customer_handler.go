package handler

import (
	"fmt"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CustomerHandler struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerHandler(customerRepo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo}
}

func validationError(c *fiber.Ctx, errs []*validator.ErrorResponse) error {
	first := errs[0]
	return c.Status(400).JSON(fiber.Map{
		"error": fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag),
	})
}

// CreateCustomer registers a customer
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&customer); len(errs) > 0 {
		return validationError(c, errs)
	}

	customer.CreatedBy = getUserID(c)
	customer.UpdatedBy = getUserID(c)
	if err := h.customerRepo.Create(&customer); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// UpdateCustomer updates a customer's registration data
// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	existing, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	var req model.Customer
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationError(c, errs)
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.BirthDate = req.BirthDate
	existing.Notes = req.Notes
	existing.UpdatedBy = getUserID(c)

	if err := h.customerRepo.Update(existing); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": existing})
}

// DeleteCustomer removes a customer and their addresses
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if _, err := h.customerRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}
	if err := h.customerRepo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}

// GetCustomers lists all customers with their addresses
// GET /api/v1/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customerRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(customers)
}

// GetCustomer returns one customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}
	return c.JSON(customer)
}

// AddAddress registers an additional address for a customer
// POST /api/v1/customers/:id/addresses
func (h *CustomerHandler) AddAddress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if _, err := h.customerRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	var address model.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&address); len(errs) > 0 {
		return validationError(c, errs)
	}

	if err := h.customerRepo.AddAddress(id, &address); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Address added", "data": address})
}
