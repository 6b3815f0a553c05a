package handler

import (
	"errors"

	"cozycorner-pos/internal/service"
	"cozycorner-pos/pkg/jwt"
	"cozycorner-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// errorStatus maps service errors onto HTTP status codes. Anything it does
// not recognise is a server fault.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrStockNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidOrderType),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrPriceMismatch):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("request failed")
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}

	body := fiber.Map{"error": err.Error()}
	var short *service.InsufficientStockError
	if errors.As(err, &short) {
		body["menu_item_id"] = short.MenuItemID
		body["requested"] = short.Requested
		body["available"] = short.Available
	}
	return c.Status(status).JSON(body)
}

var errInvalidJSON = errors.New("Invalid JSON")

// bindBody decodes the JSON body and runs struct validation on it. The
// returned error is meant for the client as is.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidJSON
	}
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return errors.New(validator.Message(errs))
	}
	return nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func success(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}
