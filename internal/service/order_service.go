package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cozycorner-pos/internal/metrics"
	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/ws"
	"cozycorner-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartItem is one line of a submitted cart. The same menu item may appear on
// several lines with different options.
type CartItem struct {
	MenuItemID uuid.UUID         `json:"menu_item_id" validate:"uuid_required"`
	Quantity   int               `json:"quantity" validate:"gte=1"`
	Price      decimal.Decimal   `json:"price"`
	Options    map[string]string `json:"options,omitempty"`
}

type PlaceOrderResult struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderConfig struct {
	StrictPricing        bool
	RestoreStockOnCancel bool
}

type OrderService interface {
	PlaceOrder(ctx context.Context, cart []CartItem, orderType model.OrderType, paymentMethod model.PaymentMethod) (*PlaceOrderResult, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, date string, status model.OrderStatus) ([]model.OrderListEntry, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	menuRepo    repository.MenuRepository
	stockRepo   repository.StockRepository
	revenueRepo repository.RevenueRepository
	stock       StockService
	clock       Clock
	cfg         OrderConfig
	metrics     metrics.Recorder
	wsHub       ws.Publisher
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, menuRepo repository.MenuRepository, stockRepo repository.StockRepository, revenueRepo repository.RevenueRepository, stock StockService, clock Clock, cfg OrderConfig, rec metrics.Recorder, hub ws.Publisher) OrderService {
	if rec == nil {
		rec = (*metrics.Collector)(nil)
	}
	if hub == nil {
		hub = (*ws.Hub)(nil)
	}
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		menuRepo:    menuRepo,
		stockRepo:   stockRepo,
		revenueRepo: revenueRepo,
		stock:       stock,
		clock:       clock,
		cfg:         cfg,
		metrics:     rec,
		wsHub:       hub,
	}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

// rejectReason buckets a failed placement for the rejection counter.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidOrderType), errors.Is(err, ErrInvalidPaymentMethod):
		return "validation"
	default:
		return "error"
	}
}

func validateCart(cart []CartItem) error {
	if len(cart) == 0 {
		return ErrEmptyCart
	}
	for i := range cart {
		if errs := validator.ValidateStruct(cart[i]); len(errs) > 0 {
			return invalidf("items[%d]: %s", i, validator.Message(errs))
		}
		if cart[i].Price.IsNegative() {
			return invalidf("items[%d]: price must be zero or greater", i)
		}
	}
	return nil
}

// PlaceOrder checks the whole cart against today's stock and, only if every
// item can be served, writes the order, its lines, the stock decrements and
// the revenue counters in one transaction.
func (s *orderService) PlaceOrder(ctx context.Context, cart []CartItem, orderType model.OrderType, paymentMethod model.PaymentMethod) (*PlaceOrderResult, error) {
	result, err := s.placeOrder(ctx, cart, orderType, paymentMethod)
	if err != nil {
		s.metrics.OrderRejected(rejectReason(err))
		return nil, err
	}
	return result, nil
}

func (s *orderService) placeOrder(ctx context.Context, cart []CartItem, orderType model.OrderType, paymentMethod model.PaymentMethod) (*PlaceOrderResult, error) {
	if orderType == "" {
		orderType = model.OrderTypeCashier
	}
	if !orderType.Valid() {
		return nil, ErrInvalidOrderType
	}
	if paymentMethod == "" {
		paymentMethod = model.PaymentCash
	}
	if !paymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if err := validateCart(cart); err != nil {
		return nil, err
	}

	if err := s.stock.EnsureToday(ctx); err != nil {
		return nil, err
	}
	now := s.clock.now()
	date := model.DateKey(now, s.clock.Location)

	// Quantities per distinct item, in first-seen cart order.
	need := make(map[uuid.UUID]int, len(cart))
	ids := make([]uuid.UUID, 0, len(cart))
	for _, line := range cart {
		if _, seen := need[line.MenuItemID]; !seen {
			ids = append(ids, line.MenuItemID)
		}
		need[line.MenuItemID] += line.Quantity
	}

	unlock := s.stock.LockKeys(date, ids)
	defer unlock()

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		available, err := s.stockRepo.LockQuantities(tx, ids, date)
		if err != nil {
			return fmt.Errorf("read stock: %w", err)
		}
		items, err := s.menuRepo.FindByIDs(tx, ids)
		if err != nil {
			return fmt.Errorf("read menu: %w", err)
		}

		// Variant and price problems win over a stock shortage.
		for i, line := range cart {
			item, ok := items[line.MenuItemID]
			if !ok {
				continue
			}
			if err := checkOptions(i, item, line.Options); err != nil {
				return err
			}
			if s.cfg.StrictPricing && !line.Price.Equal(item.Price) {
				return fmt.Errorf("items[%d] %s: %w", i, item.Name, ErrPriceMismatch)
			}
		}

		for _, id := range ids {
			if available[id] < need[id] {
				return &InsufficientStockError{
					MenuItemID: id,
					Name:       items[id].Name,
					Requested:  need[id],
					Available:  available[id],
				}
			}
		}

		total := decimal.Zero
		lines := make([]model.OrderItem, 0, len(cart))
		for _, line := range cart {
			oi := model.OrderItem{
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				Price:      line.Price,
				Options:    line.Options,
			}
			total = total.Add(oi.LineTotal())
			lines = append(lines, oi)
		}

		order = &model.Order{
			OrderNumber:   newOrderNumber(now),
			OrderType:     orderType,
			Status:        model.OrderPending,
			TotalAmount:   total,
			PaymentMethod: paymentMethod,
			BusinessDate:  date,
			Items:         lines,
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, id := range ids {
			if err := s.stock.ReserveAndDecrement(tx, id, date, need[id]); err != nil {
				var short *InsufficientStockError
				if errors.As(err, &short) {
					short.Name = items[id].Name
				}
				return err
			}
		}

		if err := s.revenueRepo.AddOrder(tx, date, total); err != nil {
			return fmt.Errorf("update daily revenue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number":   order.OrderNumber,
		"date":           date,
		"total":          order.TotalAmount.String(),
		"payment_method": paymentMethod,
		"lines":          len(order.Items),
	}).Info("order placed")
	s.metrics.OrderPlaced(string(paymentMethod), order.TotalAmount)

	taken := make(map[string]int, len(ids))
	for _, id := range ids {
		taken[id.String()] = need[id]
	}
	s.wsHub.Publish(ws.Event{
		Type:    "order_update",
		Action:  "order_created",
		Data:    order,
		Message: fmt.Sprintf("New order %s", order.OrderNumber),
	})
	s.wsHub.Publish(ws.Event{Type: "stock_update", Action: "stock_decremented", Data: taken})

	return &PlaceOrderResult{ID: order.ID, OrderNumber: order.OrderNumber, TotalAmount: order.TotalAmount}, nil
}

// checkOptions rejects a variant the item does not offer. Items without an
// option group accept whatever the client sends.
func checkOptions(index int, item model.MenuItem, opts map[string]string) error {
	if item.Options == nil || len(opts) == 0 {
		return nil
	}
	v, ok := opts[item.Options.Type]
	if !ok || item.Options.Has(v) {
		return nil
	}
	return invalidf("items[%d]: %s does not offer %s %q", index, item.Name, item.Options.Type, v)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	need := make(map[uuid.UUID]int, len(current.Items))
	ids := make([]uuid.UUID, 0, len(current.Items))
	for _, it := range current.Items {
		if _, seen := need[it.MenuItemID]; !seen {
			ids = append(ids, it.MenuItemID)
		}
		need[it.MenuItemID] += it.Quantity
	}
	if s.cfg.RestoreStockOnCancel {
		unlock := s.stock.LockKeys(current.BusinessDate, ids)
		defer unlock()
	}

	var previous model.OrderStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.orderRepo.LockByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		previous = locked.Status

		var completedAt *time.Time
		if status == model.OrderCompleted {
			now := s.clock.now()
			completedAt = &now
		}
		if err := s.orderRepo.UpdateStatus(tx, id, status, completedAt); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if !s.cfg.RestoreStockOnCancel || previous == status {
			return nil
		}
		switch {
		case status == model.OrderCancelled:
			for _, itemID := range ids {
				if err := s.stock.Restore(tx, itemID, locked.BusinessDate, need[itemID]); err != nil {
					return fmt.Errorf("restore stock: %w", err)
				}
			}
		case previous == model.OrderCancelled:
			for _, itemID := range ids {
				if err := s.stock.ReserveAndDecrement(tx, itemID, locked.BusinessDate, need[itemID]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": current.OrderNumber,
		"from":         previous,
		"to":           status,
	}).Info("order status changed")
	s.metrics.OrderStatusChanged(string(status))

	updated, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.wsHub.Publish(ws.Event{
		Type:    "order_update",
		Action:  "status_changed",
		Data:    updated,
		Message: fmt.Sprintf("Order %s is %s", updated.OrderNumber, status),
	})
	return updated, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, date string, status model.OrderStatus) ([]model.OrderListEntry, error) {
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	orders, err := s.orderRepo.FindByDate(ctx, date, status)
	if err != nil {
		return nil, err
	}
	out := make([]model.OrderListEntry, 0, len(orders))
	for i := range orders {
		out = append(out, model.OrderListEntry{Order: orders[i], ItemsSummary: orders[i].Summary()})
	}
	return out, nil
}
