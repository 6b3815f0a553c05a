package service

import (
	"context"
	"fmt"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 366
)

type RevenueService interface {
	GetDailyRevenue(ctx context.Context, date string) (*model.DailyRevenueReport, error)
	SetCashReceived(ctx context.Context, date string, amount decimal.Decimal) (*model.DailyRevenueReport, error)
	VerifyDailyRevenue(ctx context.Context, date string) (*model.DailyRevenueReport, error)
	History(ctx context.Context, limit int) ([]model.DailyRevenue, error)
}

type revenueService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	revenueRepo repository.RevenueRepository
	clock       Clock
	wsHub       ws.Publisher
}

func NewRevenueService(db *gorm.DB, orderRepo repository.OrderRepository, revenueRepo repository.RevenueRepository, clock Clock, hub ws.Publisher) RevenueService {
	if hub == nil {
		hub = (*ws.Hub)(nil)
	}
	return &revenueService{
		db:          db,
		orderRepo:   orderRepo,
		revenueRepo: revenueRepo,
		clock:       clock,
		wsHub:       hub,
	}
}

// report recomputes the day's totals from its non-cancelled orders, stores
// them and returns them together with the manual cash figures. The stored
// counters are a cache; what orders say always wins.
func (s *revenueService) report(tx *gorm.DB, date string) (*model.DailyRevenueReport, error) {
	rows, err := s.orderRepo.RevenueByPaymentMethod(tx, date)
	if err != nil {
		return nil, fmt.Errorf("sum orders: %w", err)
	}

	cash, qris := decimal.Zero, decimal.Zero
	orders := 0
	for _, r := range rows {
		switch r.PaymentMethod {
		case model.PaymentCash:
			cash = cash.Add(r.Total)
		case model.PaymentQRIS:
			qris = qris.Add(r.Total)
		default:
			continue
		}
		orders += int(r.Orders)
	}
	total := cash.Add(qris)

	if err := s.revenueRepo.RefreshTotals(tx, date, total, orders); err != nil {
		return nil, fmt.Errorf("store daily revenue: %w", err)
	}
	rev, err := s.revenueRepo.FindByDate(tx, date)
	if err != nil {
		return nil, err
	}

	return &model.DailyRevenueReport{
		DailyRevenue: *rev,
		CashRevenue:  cash,
		QrisRevenue:  qris,
		Difference:   rev.CashReceived.Sub(cash),
	}, nil
}

func (s *revenueService) GetDailyRevenue(ctx context.Context, date string) (*model.DailyRevenueReport, error) {
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return nil, err
	}

	var out *model.DailyRevenueReport
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		out, err = s.report(tx, date)
		return err
	})
	return out, err
}

func (s *revenueService) SetCashReceived(ctx context.Context, date string, amount decimal.Decimal) (*model.DailyRevenueReport, error) {
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return nil, err
	}

	var out *model.DailyRevenueReport
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.revenueRepo.SetCashReceived(tx, date, amount); err != nil {
			return fmt.Errorf("store cash received: %w", err)
		}
		out, err = s.report(tx, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"date":       date,
		"cash":       amount.String(),
		"difference": out.Difference.String(),
	}).Info("cash received recorded")
	s.wsHub.Publish(ws.Event{Type: "revenue_update", Action: "cash_received", Data: out})
	return out, nil
}

// VerifyDailyRevenue marks the day as checked. Repeating it only moves
// verified_at forward.
func (s *revenueService) VerifyDailyRevenue(ctx context.Context, date string) (*model.DailyRevenueReport, error) {
	date, err := s.clock.resolveDate(date)
	if err != nil {
		return nil, err
	}

	var out *model.DailyRevenueReport
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.revenueRepo.MarkVerified(tx, date, s.clock.now()); err != nil {
			return fmt.Errorf("verify daily revenue: %w", err)
		}
		out, err = s.report(tx, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("date", date).Info("daily revenue verified")
	s.wsHub.Publish(ws.Event{Type: "revenue_update", Action: "verified", Data: out})
	return out, nil
}

func (s *revenueService) History(ctx context.Context, limit int) ([]model.DailyRevenue, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.revenueRepo.History(ctx, limit)
}
