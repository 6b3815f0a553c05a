package service

import (
	"context"
	"testing"
	"time"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestEnsureDayInitialized_Idempotent(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	n, err := f.stock.EnsureDayInitialized(ctx, today, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	f.setStock(t, f.latte, 7)

	n, err = f.stock.EnsureDayInitialized(ctx, today, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 7, f.qty(t, f.latte), "existing rows are kept")
	assert.Equal(t, int64(3), testutil.Count(t, f.db, &model.Stock{}))

	n, err = f.stock.EnsureDayInitialized(ctx, "2026-10-19", 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = f.stock.EnsureDayInitialized(ctx, "tomorrow", 20)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = f.stock.EnsureDayInitialized(ctx, today, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestEnsureToday_FollowsTheClock(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	require.NoError(t, f.stock.EnsureToday(ctx))
	assert.Equal(t, int64(3), testutil.Count(t, f.db, &model.Stock{}))

	// 00:30 WIB on the 19th, while UTC is still on the 18th.
	f.now = f.now.Add(15 * time.Hour)
	require.NoError(t, f.stock.EnsureToday(ctx))
	assert.Equal(t, int64(6), testutil.Count(t, f.db, &model.Stock{}))

	n, err := f.stock.GetAvailability(ctx, f.americano.ID, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestGetAvailability_MissingRowIsZero(t *testing.T) {
	f := newFixture(t, OrderConfig{})

	n, err := f.stock.GetAvailability(context.Background(), f.americano.ID, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSetQuantity(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	assert.ErrorIs(t, f.stock.SetQuantity(ctx, f.latte.ID, today, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, f.stock.SetQuantity(ctx, uuid.New(), today, 1), ErrMenuItemNotFound)

	require.NoError(t, f.stock.SetQuantity(ctx, f.latte.ID, today, 0))
	assert.Equal(t, 0, f.qty(t, f.latte))
	require.NoError(t, f.stock.SetQuantity(ctx, f.latte.ID, today, 12))
	assert.Equal(t, 12, f.qty(t, f.latte))
}

func TestBulkUpdate(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()
	require.NoError(t, f.stock.EnsureToday(ctx))

	n, err := f.stock.BulkUpdate(ctx, []StockUpdate{
		{MenuItemID: f.americano.ID, Quantity: intp(10)},
		{MenuItemID: f.latte.ID, Quantity: intp(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 10, f.qty(t, f.americano))
	assert.Equal(t, 0, f.qty(t, f.latte))
}

func TestBulkUpdate_AllOrNothing(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()
	require.NoError(t, f.stock.EnsureToday(ctx))

	cases := []struct {
		name    string
		updates []StockUpdate
		want    error
	}{
		{"empty", nil, ErrValidation},
		{"missing quantity", []StockUpdate{{MenuItemID: f.americano.ID, Quantity: intp(5)}, {MenuItemID: f.latte.ID}}, ErrValidation},
		{"missing item", []StockUpdate{{MenuItemID: f.americano.ID, Quantity: intp(5)}, {Quantity: intp(5)}}, ErrValidation},
		{"negative", []StockUpdate{{MenuItemID: f.americano.ID, Quantity: intp(5)}, {MenuItemID: f.latte.ID, Quantity: intp(-2)}}, ErrInvalidQuantity},
		{"unknown item", []StockUpdate{{MenuItemID: f.americano.ID, Quantity: intp(5)}, {MenuItemID: uuid.New(), Quantity: intp(5)}}, ErrMenuItemNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.stock.BulkUpdate(ctx, tc.updates)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 50, f.qty(t, f.americano))
		})
	}
}

func TestUpdateByID(t *testing.T) {
	f := newFixture(t, OrderConfig{})
	ctx := context.Background()

	rows, err := f.stock.ListToday(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	row, err := f.stock.UpdateByID(ctx, rows[0].ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, row.Quantity)

	_, err = f.stock.UpdateByID(ctx, rows[0].ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.stock.UpdateByID(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrStockNotFound)

	old := model.Stock{MenuItemID: f.latte.ID, Date: "2026-10-17", Quantity: 3}
	require.NoError(t, f.db.Create(&old).Error)
	_, err = f.stock.UpdateByID(ctx, old.ID, 10)
	assert.ErrorIs(t, err, ErrStockNotFound, "only today's rows can be overridden")
}

func TestListToday_JoinsMenu(t *testing.T) {
	f := newFixture(t, OrderConfig{})

	rows, err := f.stock.ListToday(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, today, r.Date)
		assert.NotEmpty(t, r.Name)
		assert.Equal(t, 50, r.Quantity)
	}
}
