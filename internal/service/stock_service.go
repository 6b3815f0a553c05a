package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cozycorner-pos/internal/metrics"
	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/ws"
	"cozycorner-pos/pkg/keylock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StockUpdate is one entry of a bulk stock override. Quantity is a pointer so
// a missing value can be told apart from zero.
type StockUpdate struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   *int      `json:"quantity"`
}

type StockConfig struct {
	DefaultQty int
	AutoInit   bool
}

type StockService interface {
	GetAvailability(ctx context.Context, itemID uuid.UUID, date string) (int, error)
	ReserveAndDecrement(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error
	Restore(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error
	SetQuantity(ctx context.Context, itemID uuid.UUID, date string, qty int) error
	EnsureDayInitialized(ctx context.Context, date string, defaultQty int) (int64, error)
	EnsureToday(ctx context.Context) error
	TodayQuantities(ctx context.Context) (map[uuid.UUID]int, error)
	ListToday(ctx context.Context) ([]model.StockView, error)
	BulkUpdate(ctx context.Context, updates []StockUpdate) (int, error)
	UpdateByID(ctx context.Context, stockID uuid.UUID, qty int) (*model.Stock, error)
	LockKeys(date string, itemIDs []uuid.UUID) func()
}

type stockService struct {
	db        *gorm.DB
	stockRepo repository.StockRepository
	menuRepo  repository.MenuRepository
	clock     Clock
	cfg       StockConfig
	locks     *keylock.Locker
	metrics   metrics.Recorder
	wsHub     ws.Publisher

	initMu      sync.Mutex
	initialized string
}

func NewStockService(db *gorm.DB, stockRepo repository.StockRepository, menuRepo repository.MenuRepository, clock Clock, cfg StockConfig, rec metrics.Recorder, hub ws.Publisher) StockService {
	if rec == nil {
		rec = (*metrics.Collector)(nil)
	}
	if hub == nil {
		hub = (*ws.Hub)(nil)
	}
	return &stockService{
		db:        db,
		stockRepo: stockRepo,
		menuRepo:  menuRepo,
		clock:     clock,
		cfg:       cfg,
		locks:     keylock.New(),
		metrics:   rec,
		wsHub:     hub,
	}
}

func stockKey(itemID uuid.UUID, date string) string {
	return itemID.String() + "|" + date
}

// LockKeys serializes ledger writers in this process for every (item, date)
// pair. Callers take it before opening a transaction and release it after
// commit or rollback.
func (s *stockService) LockKeys(date string, itemIDs []uuid.UUID) func() {
	keys := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		keys = append(keys, stockKey(id, date))
	}
	return s.locks.LockAll(keys)
}

func (s *stockService) GetAvailability(ctx context.Context, itemID uuid.UUID, date string) (int, error) {
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return 0, err
	}
	return s.stockRepo.FindQuantity(ctx, itemID, date)
}

func (s *stockService) ReserveAndDecrement(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	ok, err := s.stockRepo.Decrement(tx, itemID, date, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if ok {
		return nil
	}

	current, err := s.stockRepo.LockQuantities(tx, []uuid.UUID{itemID}, date)
	if err != nil {
		return fmt.Errorf("read stock: %w", err)
	}
	return &InsufficientStockError{MenuItemID: itemID, Requested: qty, Available: current[itemID]}
}

// Restore gives qty back to an existing row. A day that was never initialized
// gets its row created with qty.
func (s *stockService) Restore(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error {
	if qty <= 0 {
		return nil
	}
	current, err := s.stockRepo.LockQuantities(tx, []uuid.UUID{itemID}, date)
	if err != nil {
		return fmt.Errorf("read stock: %w", err)
	}
	if _, ok := current[itemID]; !ok {
		return s.stockRepo.Upsert(tx, itemID, date, qty)
	}
	return s.stockRepo.Increment(tx, itemID, date, qty)
}

func (s *stockService) SetQuantity(ctx context.Context, itemID uuid.UUID, date string, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return err
	}
	if _, err := s.menuRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}

	unlock := s.LockKeys(date, []uuid.UUID{itemID})
	defer unlock()

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.stockRepo.Upsert(tx, itemID, date, qty)
	}); err != nil {
		return fmt.Errorf("set stock: %w", err)
	}

	s.metrics.StockUpdated("set", 1)
	s.wsHub.Publish(ws.Event{
		Type:   "stock_update",
		Action: "stock_set",
		Data:   map[string]interface{}{"menu_item_id": itemID, "date": date, "quantity": qty},
	})
	return nil
}

// EnsureDayInitialized creates a row with defaultQty for every menu item that
// has none on date. Existing rows are never touched, so repeated calls are
// harmless.
func (s *stockService) EnsureDayInitialized(ctx context.Context, date string, defaultQty int) (int64, error) {
	if defaultQty < 0 {
		return 0, ErrInvalidQuantity
	}
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return 0, err
	}

	var created int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := s.menuRepo.ListIDs(tx)
		if err != nil {
			return err
		}
		created, err = s.stockRepo.InsertMissing(tx, ids, date, defaultQty)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("initialize stock for %s: %w", date, err)
	}

	if created > 0 {
		logrus.WithFields(logrus.Fields{"date": date, "rows": created, "quantity": defaultQty}).Info("stock initialized")
		s.metrics.StockUpdated("init", int(created))
	}
	return created, nil
}

// EnsureToday runs day initialization at most once per business day.
func (s *stockService) EnsureToday(ctx context.Context) error {
	if !s.cfg.AutoInit {
		return nil
	}
	s.initMu.Lock()
	defer s.initMu.Unlock()

	today := s.clock.Today()
	if s.initialized == today {
		return nil
	}
	if _, err := s.EnsureDayInitialized(ctx, today, s.cfg.DefaultQty); err != nil {
		return err
	}
	s.initialized = today
	return nil
}

func (s *stockService) TodayQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	if err := s.EnsureToday(ctx); err != nil {
		return nil, err
	}
	return s.stockRepo.QuantitiesByDate(ctx, s.clock.Today())
}

func (s *stockService) ListToday(ctx context.Context) ([]model.StockView, error) {
	if err := s.EnsureToday(ctx); err != nil {
		return nil, err
	}
	return s.stockRepo.ListByDate(ctx, s.clock.Today())
}

// BulkUpdate validates every entry before writing any of them, then applies
// them in one transaction that stops at the first failure.
func (s *stockService) BulkUpdate(ctx context.Context, updates []StockUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, invalidf("stocks must be a non-empty array")
	}
	ids := make([]uuid.UUID, 0, len(updates))
	for i, u := range updates {
		if u.MenuItemID == uuid.Nil {
			return 0, invalidf("stocks[%d]: menu_item_id is required", i)
		}
		if u.Quantity == nil {
			return 0, invalidf("stocks[%d]: quantity is required", i)
		}
		if *u.Quantity < 0 {
			return 0, fmt.Errorf("stocks[%d]: %w", i, ErrInvalidQuantity)
		}
		ids = append(ids, u.MenuItemID)
	}

	today := s.clock.Today()
	unlock := s.LockKeys(today, ids)
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.menuRepo.FindByIDs(tx, ids)
		if err != nil {
			return err
		}
		for i, u := range updates {
			if _, ok := items[u.MenuItemID]; !ok {
				return fmt.Errorf("stocks[%d]: %w", i, ErrMenuItemNotFound)
			}
			if err := s.stockRepo.Upsert(tx, u.MenuItemID, today, *u.Quantity); err != nil {
				return fmt.Errorf("stocks[%d]: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{"date": today, "rows": len(updates)}).Info("stock bulk updated")
	s.metrics.StockUpdated("bulk", len(updates))
	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "bulk_update",
		Data:    updates,
		Message: fmt.Sprintf("%d stock entries updated", len(updates)),
	})
	return len(updates), nil
}

// UpdateByID overrides a single row, which must belong to today.
func (s *stockService) UpdateByID(ctx context.Context, stockID uuid.UUID, qty int) (*model.Stock, error) {
	if qty < 0 {
		return nil, ErrInvalidQuantity
	}
	today := s.clock.Today()

	row, err := s.stockRepo.FindByID(s.db.WithContext(ctx), stockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	if row.Date != today {
		return nil, ErrStockNotFound
	}

	unlock := s.LockKeys(today, []uuid.UUID{row.MenuItemID})
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.stockRepo.SetByID(tx, stockID, qty); err != nil {
			return err
		}
		row, err = s.stockRepo.FindByID(tx, stockID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update stock %s: %w", stockID, err)
	}

	s.metrics.StockUpdated("single", 1)
	s.wsHub.Publish(ws.Event{Type: "stock_update", Action: "stock_set", Data: row})
	return row, nil
}
