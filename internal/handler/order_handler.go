package handler

import (
	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// PlaceOrderRequest keeps the camelCase keys the ordering screens send.
type PlaceOrderRequest struct {
	Items         []service.CartItem  `json:"items"`
	OrderType     model.OrderType     `json:"orderType" validate:"omitempty,oneof=self-service cashier"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=cash qris"`
}

type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required"`
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if len(req.Items) == 0 {
		return badRequest(c, "Order items are required")
	}

	res, err := h.service.PlaceOrder(c.UserContext(), req.Items, req.OrderType, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "order": res})
}

// GET /api/orders?date=YYYY-MM-DD&status=pending
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), c.Query("date"), model.OrderStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	order, err := h.service.GetOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	var req UpdateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "Invalid status")
	}

	if _, err := h.service.UpdateOrderStatus(c.UserContext(), id, req.Status); err != nil {
		return respondError(c, err)
	}
	return success(c, "Order status updated")
}
