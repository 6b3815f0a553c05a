package repository

import (
	"context"

	"cozycorner-pos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository interface {
	SalesByDay(ctx context.Context, from, to string) ([]SalesDayData, error)
	GetDashboardStats(ctx context.Context, date string, lowStock int) (*DashboardStats, error)
}

// SalesDayData is one point of the sales chart.
type SalesDayData struct {
	Date      string          `json:"date"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cancelled int64           `json:"cancelled"`
}

// DashboardStats is the overview for one business day.
type DashboardStats struct {
	Date           string          `json:"date"`
	MenuItems      int64           `json:"menu_items"`
	SoldOutCount   int64           `json:"sold_out_count"`
	LowStockCount  int64           `json:"low_stock_count"`
	StockValuation decimal.Decimal `json:"stock_valuation"`
	Orders         int64           `json:"orders"`
	PendingOrders  int64           `json:"pending_orders"`
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) SalesByDay(ctx context.Context, from, to string) ([]SalesDayData, error) {
	var results []SalesDayData
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select(`
			business_date AS date,
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN 1 ELSE 0 END), 0) AS orders,
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_amount ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled
		`).
		Where("business_date BETWEEN ? AND ?", from, to).
		Group("business_date").
		Order("business_date ASC").
		Scan(&results).Error
	return results, err
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context, date string, lowStock int) (*DashboardStats, error) {
	stats := DashboardStats{Date: date}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.MenuItem{}).Count(&stats.MenuItems).Error; err != nil {
		return nil, err
	}

	// Sold out and low stock are counted on the day's ledger rows
	if err := db.Model(&model.Stock{}).
		Where("date = ? AND quantity <= 0", date).
		Count(&stats.SoldOutCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Stock{}).
		Where("date = ? AND quantity > 0 AND quantity < ?", date, lowStock).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	var valuation struct{ Total decimal.Decimal }
	if err := db.Table("stock AS s").
		Select("COALESCE(SUM(s.quantity * m.price), 0) AS total").
		Joins("JOIN menu_items m ON m.id = s.menu_item_id").
		Where("s.date = ?", date).
		Scan(&valuation).Error; err != nil {
		return nil, err
	}
	stats.StockValuation = valuation.Total

	if err := db.Model(&model.Order{}).
		Where("business_date = ? AND status <> ?", date, model.OrderCancelled).
		Count(&stats.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Order{}).
		Where("business_date = ? AND status = ?", date, model.OrderPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
