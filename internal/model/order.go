package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQRIS PaymentMethod = "qris"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentQRIS
}

type OrderType string

const (
	OrderTypeSelfService OrderType = "self-service"
	OrderTypeCashier     OrderType = "cashier"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeSelfService || t == OrderTypeCashier
}

type Order struct {
	BaseModel
	OrderNumber   string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	OrderType     OrderType       `gorm:"type:varchar(20);not null" json:"order_type"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	BusinessDate  string          `gorm:"type:varchar(10);not null;index" json:"business_date"` // YYYY-MM-DD in the cafe's time zone
	CompletedAt   *time.Time      `json:"completed_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// Summary renders the lines as "Americano x2, Latte x1" for order lists.
func (o *Order) Summary() string {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		name := it.MenuItemID.String()
		if it.MenuItem != nil {
			name = it.MenuItem.Name
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

// OrderItem is one cart line. Price is the unit price at order time and is
// never rewritten when the menu price changes.
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID         `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	MenuItem   *MenuItem         `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int               `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"price"`
	Options    map[string]string `gorm:"type:text;serializer:json" json:"options,omitempty"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderListEntry is an order plus a flattened description of its lines.
type OrderListEntry struct {
	Order
	ItemsSummary string `json:"items_summary"`
}
