package handler

import (
	"go-boutique-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	roleRepo      repository.RoleRepository
	privilegeRepo repository.PrivilegeRepository
}

func NewRoleHandler(roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, privilegeRepo: privilegeRepo}
}

// GetRoles returns all available roles
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roles"})
	}
	return c.JSON(roles)
}

// GetPrivileges returns all assignable privileges
// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.privilegeRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
	}
	return c.JSON(privileges)
}
