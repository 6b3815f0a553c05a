package handler

import (
	"cozycorner-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	service service.MenuService
}

func NewMenuHandler(s service.MenuService) *MenuHandler {
	return &MenuHandler{service: s}
}

// GET /api/menu
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	items, err := h.service.ListMenu(c.UserContext(), "")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GET /api/menu/category/:category
func (h *MenuHandler) GetMenuByCategory(c *fiber.Ctx) error {
	items, err := h.service.ListMenu(c.UserContext(), c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GET /api/menu/:id
func (h *MenuHandler) GetMenuItem(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
	}

	item, err := h.service.GetMenuItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// PUT /api/menu/:id
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
	}

	var req service.MenuUpdate
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.service.UpdateMenuItem(c.UserContext(), id, req); err != nil {
		return respondError(c, err)
	}
	return success(c, "Menu item updated successfully")
}
