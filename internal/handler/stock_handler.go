package handler

import (
	"cozycorner-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

type BulkStockRequest struct {
	Stocks []service.StockUpdate `json:"stocks"`
}

type StockQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// GET /api/stock
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	rows, err := h.service.ListToday(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// POST /api/stock/update
func (h *StockHandler) BulkUpdate(c *fiber.Ctx) error {
	var req BulkStockRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Stocks == nil {
		return badRequest(c, "Stocks array is required")
	}

	if _, err := h.service.BulkUpdate(c.UserContext(), req.Stocks); err != nil {
		return respondError(c, err)
	}
	return success(c, "Stock updated successfully")
}

// PUT /api/stock/:id
func (h *StockHandler) UpdateOne(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock item not found for today"})
	}

	var req StockQuantityRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "Valid quantity is required")
	}

	if _, err := h.service.UpdateByID(c.UserContext(), id, *req.Quantity); err != nil {
		return respondError(c, err)
	}
	return success(c, "Stock updated successfully")
}
