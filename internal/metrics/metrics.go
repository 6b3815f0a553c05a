// Package metrics exposes POS counters in Prometheus format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Recorder is what services report to. A nil *Collector is a valid no-op
// recorder, so tests can leave metrics out.
type Recorder interface {
	OrderPlaced(paymentMethod string, amount decimal.Decimal)
	OrderRejected(reason string)
	OrderStatusChanged(status string)
	StockUpdated(source string, items int)
}

type Collector struct {
	registry      *prometheus.Registry
	ordersPlaced  *prometheus.CounterVec
	orderRevenue  *prometheus.CounterVec
	ordersFailed  *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
	stockUpdates  *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_orders_placed_total",
				Help: "Orders committed, by payment method",
			},
			[]string{"payment_method"},
		),
		orderRevenue: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_order_revenue_total",
				Help: "Sum of committed order totals, by payment method",
			},
			[]string{"payment_method"},
		),
		ordersFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_orders_rejected_total",
				Help: "Order placements that failed, by reason",
			},
			[]string{"reason"},
		),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_order_status_changes_total",
				Help: "Order status transitions, by new status",
			},
			[]string{"status"},
		),
		stockUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_stock_rows_updated_total",
				Help: "Stock rows written by administrative overrides",
			},
			[]string{"source"},
		),
	}

	c.registry.MustRegister(
		c.ordersPlaced,
		c.orderRevenue,
		c.ordersFailed,
		c.statusChanges,
		c.stockUpdates,
		prometheus.NewGoCollector(),
	)
	return c
}

// Registry is served on /metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) OrderPlaced(paymentMethod string, amount decimal.Decimal) {
	if c == nil {
		return
	}
	c.ordersPlaced.WithLabelValues(paymentMethod).Inc()
	c.orderRevenue.WithLabelValues(paymentMethod).Add(amount.InexactFloat64())
}

func (c *Collector) OrderRejected(reason string) {
	if c == nil {
		return
	}
	c.ordersFailed.WithLabelValues(reason).Inc()
}

func (c *Collector) OrderStatusChanged(status string) {
	if c == nil {
		return
	}
	c.statusChanges.WithLabelValues(status).Inc()
}

func (c *Collector) StockUpdated(source string, items int) {
	if c == nil {
		return
	}
	c.stockUpdates.WithLabelValues(source).Add(float64(items))
}
