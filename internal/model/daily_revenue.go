package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenue is the per-day reconciliation record. TotalRevenue and
// TotalOrders are refreshed from orders whenever the day is read;
// CashReceived and Verified only change through cashier actions.
type DailyRevenue struct {
	BaseModel
	Date         string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	TotalRevenue decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_revenue"`
	TotalOrders  int             `gorm:"not null" json:"total_orders"`
	CashReceived decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"cash_received"`
	Verified     bool            `gorm:"not null" json:"verified"`
	VerifiedAt   *time.Time      `json:"verified_at"`
}

func (DailyRevenue) TableName() string {
	return "daily_revenue"
}

// DailyRevenueReport is what the cashier screen shows for one day.
type DailyRevenueReport struct {
	DailyRevenue
	CashRevenue decimal.Decimal `json:"cash_revenue"`
	QrisRevenue decimal.Decimal `json:"qris_revenue"`
	Difference  decimal.Decimal `json:"difference"` // selisih: cash_received - cash_revenue
}
