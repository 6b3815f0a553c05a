package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMenu_WithTodayStock(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()
	require.NoError(t, f.stock.EnsureToday(ctx))
	f.setStock(t, f.latte, 0)

	items, err := f.menu.ListMenu(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 3)

	byName := map[string]bool{}
	for _, it := range items {
		byName[it.Name] = it.IsSoldOut
	}
	assert.True(t, byName["Latte"])
	assert.False(t, byName["Americano"])

	coffee, err := f.menu.ListMenu(ctx, "Coffee")
	require.NoError(t, err)
	assert.Len(t, coffee, 2)

	none, err := f.menu.ListMenu(ctx, "Dessert")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetMenuItem(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	item, err := f.menu.GetMenuItem(ctx, f.geprek.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, item.Stock)
	require.NotNil(t, item.Options)
	assert.Equal(t, "sambal", item.Options.Type)
	assert.Equal(t, "Sambal Matah", item.Options.Labels["matah"])

	_, err = f.menu.GetMenuItem(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestUpdateMenuItem(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	_, err := f.menu.UpdateMenuItem(ctx, f.americano.ID, MenuUpdate{})
	assert.ErrorIs(t, err, ErrValidation)

	blank := "  "
	_, err = f.menu.UpdateMenuItem(ctx, f.americano.ID, MenuUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	price := decimal.NewFromInt(27000)
	item, err := f.menu.UpdateMenuItem(ctx, f.americano.ID, MenuUpdate{Price: &price})
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(price))
	assert.Equal(t, "Americano", item.Name)

	_, err = f.menu.UpdateMenuItem(ctx, uuid.New(), MenuUpdate{Price: &price})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestUpdateMenuItem_DoesNotRewriteOrderPrices(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	res, err := f.orders.PlaceOrder(ctx, []CartItem{line(f.americano, 1)}, "", "")
	require.NoError(t, err)

	price := decimal.NewFromInt(30000)
	_, err = f.menu.UpdateMenuItem(ctx, f.americano.ID, MenuUpdate{Price: &price})
	require.NoError(t, err)

	order, err := f.orders.GetOrder(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(25000)))
}
