package service

import (
	"errors"
	"fmt"
	"time"

	"cozycorner-pos/internal/model"

	"github.com/google/uuid"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("quantity must be zero or greater")
	ErrInvalidStatus        = errors.New("invalid status, use pending, completed or cancelled")
	ErrInvalidAmount        = errors.New("amount must be zero or greater")
	ErrInvalidPaymentMethod = errors.New("invalid payment method, use cash or qris")
	ErrInvalidOrderType     = errors.New("invalid order type, use self-service or cashier")
	ErrInvalidDate          = model.ErrInvalidDate
	ErrPriceMismatch        = errors.New("price does not match the menu")
	ErrOrderNotFound        = errors.New("order not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrStockNotFound        = errors.New("stock entry not found")
	ErrInvalidPassword      = errors.New("invalid password")
)

// InsufficientStockError names the first cart item that could not be served.
type InsufficientStockError struct {
	MenuItemID uuid.UUID
	Name       string
	Requested  int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	name := e.Name
	if name == "" {
		name = e.MenuItemID.String()
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError carries a client-facing message for a malformed request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Clock decides what "today" is. Business days follow the cafe's time zone,
// not the server's.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Clock) Today() string {
	return model.DateKey(c.now(), c.Location)
}

// resolveDate maps "" to today and validates anything else.
func (c Clock) resolveDate(date string) (string, error) {
	if date == "" {
		return c.Today(), nil
	}
	return model.NormalizeDate(date)
}
