package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics records counters for stock mutations and alerts.
type InventoryMetrics struct {
	adjustments *prometheus.CounterVec
	conflicts   prometheus.Counter
	lowStock    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_adjustments_total",
		Help: "Stock adjustments applied, labelled by change type and reason.",
	}, []string{"change_type", "reason"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_adjustment_conflicts_total",
		Help: "Stock adjustments that lost a concurrent update race.",
	})
	lowStock := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_low_stock_alerts_total",
		Help: "Low stock alerts raised, labelled by alert type.",
	}, []string{"type"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_operation_duration_seconds",
		Help:    "Duration of inventory operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(adjustments, conflicts, lowStock, duration)
	return &InventoryMetrics{
		adjustments: adjustments,
		conflicts:   conflicts,
		lowStock:    lowStock,
		duration:    duration,
	}
}

// IncAdjustment increments the adjustment counter for the change type and reason.
func (m *InventoryMetrics) IncAdjustment(changeType, reason string) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(normalizeLabel(changeType), normalizeLabel(reason)).Inc()
}

// IncConflict increments the concurrent update conflict counter.
func (m *InventoryMetrics) IncConflict() {
	if m == nil || m.conflicts == nil {
		return
	}
	m.conflicts.Inc()
}

// IncLowStockAlert increments the alert counter for the alert type.
func (m *InventoryMetrics) IncLowStockAlert(alertType string) {
	if m == nil || m.lowStock == nil {
		return
	}
	m.lowStock.WithLabelValues(normalizeLabel(alertType)).Inc()
}

// ObserveDuration records the duration for the named operation.
func (m *InventoryMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
