package middleware

import (
	"strings"

	"cozycorner-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator is satisfied by service.AuthService.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// RequireAdmin validates the bearer token and stores its claims in the
// request locals for downstream handlers.
func RequireAdmin(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("session_id", claims.ID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}
