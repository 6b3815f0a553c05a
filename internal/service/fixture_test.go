package service

import (
	"context"
	"testing"
	"time"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var wib = time.FixedZone("WIB", 7*60*60)

const today = "2026-10-18"

type fixture struct {
	db    *gorm.DB
	now   time.Time
	clock Clock

	stock   StockService
	orders  OrderService
	revenue RevenueService
	menu    MenuService

	americano model.MenuItem
	latte     model.MenuItem
	geprek    model.MenuItem
}

func newFixture(t *testing.T, cfg OrderConfig) *fixture {
	t.Helper()

	f := &fixture{
		db:  testutil.NewDB(t),
		now: time.Date(2026, 10, 18, 9, 30, 0, 0, wib),
	}
	clock := Clock{Now: func() time.Time { return f.now }, Location: wib}
	f.clock = clock

	menuRepo := repository.NewMenuRepo(f.db)
	stockRepo := repository.NewStockRepo(f.db)
	orderRepo := repository.NewOrderRepo(f.db)
	revenueRepo := repository.NewRevenueRepo(f.db)

	f.stock = NewStockService(f.db, stockRepo, menuRepo, clock, StockConfig{DefaultQty: 50, AutoInit: true}, nil, nil)
	f.orders = NewOrderService(f.db, orderRepo, menuRepo, stockRepo, revenueRepo, f.stock, clock, cfg, nil, nil)
	f.revenue = NewRevenueService(f.db, orderRepo, revenueRepo, clock, nil)
	f.menu = NewMenuService(menuRepo, f.stock, nil)

	f.americano = testutil.CreateMenuItem(t, f.db, "Americano", "Coffee", 25000)
	f.latte = testutil.CreateMenuItem(t, f.db, "Latte", "Coffee", 32000)
	f.geprek = model.MenuItem{
		Name:     "Ayam Geprek",
		Category: "Food",
		Price:    decimal.NewFromInt(25000),
		Options: &model.OptionGroup{
			Type:    "sambal",
			Options: []string{"matah", "bawang"},
			Labels:  map[string]string{"matah": "Sambal Matah", "bawang": "Sambal Bawang"},
		},
	}
	require.NoError(t, f.db.Create(&f.geprek).Error)

	return f
}

func (f *fixture) setStock(t *testing.T, item model.MenuItem, qty int) {
	t.Helper()
	require.NoError(t, f.stock.SetQuantity(context.Background(), item.ID, today, qty))
}

func (f *fixture) qty(t *testing.T, item model.MenuItem) int {
	t.Helper()
	n, err := f.stock.GetAvailability(context.Background(), item.ID, today)
	require.NoError(t, err)
	return n
}

func line(item model.MenuItem, qty int) CartItem {
	return CartItem{MenuItemID: item.ID, Quantity: qty, Price: item.Price}
}

// snapshot captures everything an order placement may touch.
type snapshot struct {
	orders, orderItems, revenueRows int64
	stock                           map[string]int
}

func (f *fixture) snapshot(t *testing.T) snapshot {
	t.Helper()
	var rows []model.Stock
	require.NoError(t, f.db.Order("id").Find(&rows).Error)
	stock := make(map[string]int, len(rows))
	for _, r := range rows {
		stock[r.MenuItemID.String()+"|"+r.Date] = r.Quantity
	}
	return snapshot{
		orders:      testutil.Count(t, f.db, &model.Order{}),
		orderItems:  testutil.Count(t, f.db, &model.OrderItem{}),
		revenueRows: testutil.Count(t, f.db, &model.DailyRevenue{}),
		stock:       stock,
	}
}
