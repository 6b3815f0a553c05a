package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.True(t, OrderCompleted.Valid())
	assert.True(t, OrderCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentMethodAndOrderType(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentQRIS.Valid())
	assert.False(t, PaymentMethod("card").Valid())

	assert.True(t, OrderTypeSelfService.Valid())
	assert.True(t, OrderTypeCashier.Valid())
	assert.False(t, OrderType("delivery").Valid())
}

func TestOrderItemLineTotal(t *testing.T) {
	it := OrderItem{Quantity: 3, Price: decimal.NewFromInt(25000)}
	assert.True(t, it.LineTotal().Equal(decimal.NewFromInt(75000)))
}

func TestOrderSummary(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Quantity: 2, MenuItem: &MenuItem{Name: "Americano"}},
		{Quantity: 1, MenuItem: &MenuItem{Name: "Latte"}},
	}}
	assert.Equal(t, "Americano x2, Latte x1", o.Summary())

	id := uuid.New()
	o = Order{Items: []OrderItem{{Quantity: 4, MenuItemID: id}}}
	assert.Equal(t, id.String()+" x4", o.Summary())
}

func TestDateKey(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	// 20:00 UTC is already the next day in Jakarta.
	ts := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-18", DateKey(ts, wib))
	assert.Equal(t, "2026-10-17", DateKey(ts, time.UTC))
}

func TestNormalizeDate(t *testing.T) {
	d, err := NormalizeDate("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", d)

	_, err = NormalizeDate("18/10/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = NormalizeDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOptionGroupHas(t *testing.T) {
	g := &OptionGroup{Type: "sambal", Options: []string{"matah", "bawang"}}
	assert.True(t, g.Has("matah"))
	assert.False(t, g.Has("ijo"))
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(OrderItem{Price: decimal.NewFromInt(25000)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":25000`)
}
