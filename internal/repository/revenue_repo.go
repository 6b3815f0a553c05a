package repository

import (
	"context"
	"time"

	"cozycorner-pos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevenueRepository interface {
	FindByDate(tx *gorm.DB, date string) (*model.DailyRevenue, error)
	AddOrder(tx *gorm.DB, date string, amount decimal.Decimal) error
	RefreshTotals(tx *gorm.DB, date string, total decimal.Decimal, orders int) error
	SetCashReceived(tx *gorm.DB, date string, amount decimal.Decimal) error
	MarkVerified(tx *gorm.DB, date string, at time.Time) error
	History(ctx context.Context, limit int) ([]model.DailyRevenue, error)
}

type revenueRepo struct {
	db *gorm.DB
}

func NewRevenueRepo(db *gorm.DB) RevenueRepository {
	return &revenueRepo{db}
}

func onDate(updates map[string]interface{}) clause.OnConflict {
	updates["updated_at"] = time.Now()
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(updates),
	}
}

func (r *revenueRepo) FindByDate(tx *gorm.DB, date string) (*model.DailyRevenue, error) {
	var rev model.DailyRevenue
	if err := tx.Where("date = ?", date).First(&rev).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

// AddOrder rolls one committed order into the day's running counters,
// creating the row on the first order of the day.
func (r *revenueRepo) AddOrder(tx *gorm.DB, date string, amount decimal.Decimal) error {
	row := model.DailyRevenue{Date: date, TotalRevenue: amount, TotalOrders: 1, CashReceived: decimal.Zero}
	return tx.Clauses(onDate(map[string]interface{}{
		"total_revenue": gorm.Expr("daily_revenue.total_revenue + ?", amount),
		"total_orders":  gorm.Expr("daily_revenue.total_orders + 1"),
	})).Create(&row).Error
}

// RefreshTotals overwrites the counters with values derived from orders.
func (r *revenueRepo) RefreshTotals(tx *gorm.DB, date string, total decimal.Decimal, orders int) error {
	row := model.DailyRevenue{Date: date, TotalRevenue: total, TotalOrders: orders, CashReceived: decimal.Zero}
	return tx.Clauses(onDate(map[string]interface{}{
		"total_revenue": total,
		"total_orders":  orders,
	})).Create(&row).Error
}

func (r *revenueRepo) SetCashReceived(tx *gorm.DB, date string, amount decimal.Decimal) error {
	row := model.DailyRevenue{Date: date, TotalRevenue: decimal.Zero, CashReceived: amount}
	return tx.Clauses(onDate(map[string]interface{}{
		"cash_received": amount,
	})).Create(&row).Error
}

func (r *revenueRepo) MarkVerified(tx *gorm.DB, date string, at time.Time) error {
	row := model.DailyRevenue{Date: date, TotalRevenue: decimal.Zero, CashReceived: decimal.Zero, Verified: true, VerifiedAt: &at}
	return tx.Clauses(onDate(map[string]interface{}{
		"verified":    true,
		"verified_at": at,
	})).Create(&row).Error
}

func (r *revenueRepo) History(ctx context.Context, limit int) ([]model.DailyRevenue, error) {
	var rows []model.DailyRevenue
	err := r.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
