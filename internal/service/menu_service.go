package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuUpdate is a partial edit; nil fields are left alone.
type MenuUpdate struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

type MenuService interface {
	ListMenu(ctx context.Context, category string) ([]model.MenuItemView, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*model.MenuItemView, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, upd MenuUpdate) (*model.MenuItemView, error)
}

type menuService struct {
	menuRepo repository.MenuRepository
	stock    StockService
	wsHub    ws.Publisher
}

func NewMenuService(menuRepo repository.MenuRepository, stock StockService, hub ws.Publisher) MenuService {
	if hub == nil {
		hub = (*ws.Hub)(nil)
	}
	return &menuService{menuRepo: menuRepo, stock: stock, wsHub: hub}
}

func withStock(item model.MenuItem, qty int) model.MenuItemView {
	return model.MenuItemView{MenuItem: item, Stock: qty, IsSoldOut: qty <= 0}
}

func (s *menuService) ListMenu(ctx context.Context, category string) ([]model.MenuItemView, error) {
	var (
		items []model.MenuItem
		err   error
	)
	if category == "" {
		items, err = s.menuRepo.FindAll(ctx)
	} else {
		items, err = s.menuRepo.FindByCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}

	qtys, err := s.stock.TodayQuantities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.MenuItemView, 0, len(items))
	for _, it := range items {
		out = append(out, withStock(it, qtys[it.ID]))
	}
	return out, nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*model.MenuItemView, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if err := s.stock.EnsureToday(ctx); err != nil {
		return nil, err
	}
	qty, err := s.stock.GetAvailability(ctx, id, "")
	if err != nil {
		return nil, err
	}
	view := withStock(*item, qty)
	return &view, nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, upd MenuUpdate) (*model.MenuItemView, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, invalidf("name must not be empty")
		}
		fields["name"] = name
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return nil, invalidf("price must be zero or greater")
		}
		fields["price"] = *upd.Price
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if len(fields) == 0 {
		return nil, invalidf("No fields to update")
	}

	if err := s.menuRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	view, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.wsHub.Publish(ws.Event{Type: "menu_update", Action: "menu_updated", Data: view})
	return view, nil
}
