package service

import (
	"context"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
)

// LowStockThreshold marks items that will sell out soon.
const LowStockThreshold = 10

type DashboardService interface {
	GetSalesTrend(ctx context.Context, days int) ([]repository.SalesDayData, error)
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
}

type dashboardService struct {
	dashRepo repository.DashboardRepository
	stock    StockService
	clock    Clock
}

func NewDashboardService(dashRepo repository.DashboardRepository, stock StockService, clock Clock) DashboardService {
	return &dashboardService{dashRepo: dashRepo, stock: stock, clock: clock}
}

// GetSalesTrend covers the last days business days, today included.
func (s *dashboardService) GetSalesTrend(ctx context.Context, days int) ([]repository.SalesDayData, error) {
	if days <= 0 {
		days = 7
	}
	end := s.clock.now()
	from := model.DateKey(end.AddDate(0, 0, -(days - 1)), s.clock.Location)
	to := model.DateKey(end, s.clock.Location)

	return s.dashRepo.SalesByDay(ctx, from, to)
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	if err := s.stock.EnsureToday(ctx); err != nil {
		return nil, err
	}
	return s.dashRepo.GetDashboardStats(ctx, s.clock.Today(), LowStockThreshold)
}
