package repository

import (
	"context"
	"time"

	"cozycorner-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, completedAt *time.Time) error
	FindByDate(ctx context.Context, date string, status model.OrderStatus) ([]model.Order, error)
	RevenueByPaymentMethod(tx *gorm.DB, date string) ([]PaymentBreakdown, error)
}

// PaymentBreakdown is one payment method's share of a day's non-cancelled orders.
type PaymentBreakdown struct {
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Total         decimal.Decimal     `json:"total"`
	Orders        int64               `json:"orders"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create inserts the order and its Items in the caller's transaction.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items.MenuItem").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, completedAt *time.Time) error {
	return tx.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		}).Error
}

// FindByDate lists a day's orders newest first; an empty status means all.
func (r *orderRepo) FindByDate(ctx context.Context, date string, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).Preload("Items.MenuItem").Where("business_date = ?", date)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) RevenueByPaymentMethod(tx *gorm.DB, date string) ([]PaymentBreakdown, error) {
	var rows []PaymentBreakdown
	err := tx.Model(&model.Order{}).
		Select("payment_method, COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS orders").
		Where("business_date = ? AND status <> ?", date, model.OrderCancelled).
		Group("payment_method").
		Scan(&rows).Error
	return rows, err
}
