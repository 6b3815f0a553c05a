package handler

import (
	"cozycorner-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Login exchanges the admin password for a session token
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "Password is required")
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"message": "Login successful",
	})
}

// Verify reports whether a token is still valid
// POST /api/auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req VerifyTokenRequest
	_ = c.BodyParser(&req)

	if _, err := h.authService.ValidateToken(req.Token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Token valid"})
}
