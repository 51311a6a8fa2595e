package middleware

import (
	"strings"

	"go-boutique-pos/internal/repository"
	"go-boutique-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT token and sets operator info in the request
// context. The token version is checked against the database so a login on
// another register invalidates the previous session.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another register)"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_privileges", claims.Privileges)

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated operator has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}
