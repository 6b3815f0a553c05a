package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is the remaining quantity of one menu item on one calendar day.
// Quantity never goes below zero.
type Stock struct {
	BaseModel
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_date,priority:1" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_stock_item_date,priority:2;index" json:"date"`
	Quantity   int       `gorm:"not null" json:"quantity"`
}

func (Stock) TableName() string {
	return "stock"
}

// StockView is a stock row joined with its menu item, used by the stock screen.
type StockView struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	Date       string          `json:"date"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
}
