package service

import (
	"context"
	"testing"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()
	dash := NewDashboardService(repository.NewDashboardRepo(f.db), f.stock, f.clock)

	require.NoError(t, f.stock.EnsureToday(ctx))
	f.setStock(t, f.americano, 0)
	f.setStock(t, f.latte, 5)

	_, err := f.orders.PlaceOrder(ctx, []CartItem{line(f.latte, 2)}, "", "")
	require.NoError(t, err)
	res, err := f.orders.PlaceOrder(ctx, []CartItem{line(f.geprek, 1)}, "", "")
	require.NoError(t, err)
	_, err = f.orders.UpdateOrderStatus(ctx, res.ID, model.OrderCancelled)
	require.NoError(t, err)

	stats, err := dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, today, stats.Date)
	assert.Equal(t, int64(3), stats.MenuItems)
	assert.Equal(t, int64(1), stats.SoldOutCount)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.Orders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	// latte 3 x 32000 + geprek 49 x 25000
	assert.True(t, stats.StockValuation.Equal(decimal.NewFromInt(1321000)), stats.StockValuation.String())
}

func TestDashboardSalesTrend(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()
	dash := NewDashboardService(repository.NewDashboardRepo(f.db), f.stock, f.clock)
	orderRepo := repository.NewOrderRepo(f.db)

	past := func(num, date string, status model.OrderStatus, amount int64) {
		o := &model.Order{
			OrderNumber:   num,
			OrderType:     model.OrderTypeCashier,
			Status:        status,
			PaymentMethod: model.PaymentCash,
			TotalAmount:   decimal.NewFromInt(amount),
			BusinessDate:  date,
		}
		require.NoError(t, orderRepo.Create(f.db, o))
	}
	past("ORD-A", "2026-10-10", model.OrderCompleted, 99000)
	past("ORD-B", "2026-10-16", model.OrderCompleted, 15000)
	past("ORD-C", "2026-10-18", model.OrderCancelled, 20000)
	past("ORD-D", "2026-10-18", model.OrderPending, 64000)

	data, err := dash.GetSalesTrend(ctx, 3)
	require.NoError(t, err)
	require.Len(t, data, 2)

	assert.Equal(t, "2026-10-16", data[0].Date)
	assert.Equal(t, int64(1), data[0].Orders)
	assert.True(t, data[0].Revenue.Equal(decimal.NewFromInt(15000)))

	assert.Equal(t, "2026-10-18", data[1].Date)
	assert.Equal(t, int64(1), data[1].Orders)
	assert.Equal(t, int64(1), data[1].Cancelled)
	assert.True(t, data[1].Revenue.Equal(decimal.NewFromInt(64000)))
}
