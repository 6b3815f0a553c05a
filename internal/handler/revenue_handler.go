package handler

import (
	"cozycorner-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RevenueHandler struct {
	service service.RevenueService
}

func NewRevenueHandler(s service.RevenueService) *RevenueHandler {
	return &RevenueHandler{service: s}
}

type CashReceivedRequest struct {
	CashReceived *decimal.Decimal `json:"cash_received" validate:"required"`
	Date         string           `json:"date" validate:"date"`
}

type VerifyRevenueRequest struct {
	Date string `json:"date" validate:"date"`
}

// GET /api/revenue/daily?date=YYYY-MM-DD
func (h *RevenueHandler) GetDaily(c *fiber.Ctx) error {
	rep, err := h.service.GetDailyRevenue(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// PUT /api/revenue/cash
func (h *RevenueHandler) SetCashReceived(c *fiber.Ctx) error {
	var req CashReceivedRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "Valid cash_received amount is required")
	}

	if _, err := h.service.SetCashReceived(c.UserContext(), req.Date, *req.CashReceived); err != nil {
		return respondError(c, err)
	}
	return success(c, "Cash received updated")
}

// POST /api/revenue/verify
func (h *RevenueHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRevenueRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}

	if _, err := h.service.VerifyDailyRevenue(c.UserContext(), req.Date); err != nil {
		return respondError(c, err)
	}
	return success(c, "Daily revenue verified")
}

// GET /api/revenue/history?limit=30
func (h *RevenueHandler) History(c *fiber.Ctx) error {
	rows, err := h.service.History(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
