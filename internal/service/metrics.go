package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

// tracerName names the tracer for service-level spans.
const tracerName = "inventory-console/service"

var (
	// productsTotal tracks the size of the product collection.
	productsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_products_total",
			Help: "Number of products currently in the inventory",
		},
	)

	// auditEntriesTotal counts audit entries written, by action.
	auditEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_audit_entries_total",
			Help: "Total number of audit log entries written",
		},
		[]string{"action"},
	)

	// importRowsTotal counts imported CSV rows by outcome.
	importRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_import_rows_total",
			Help: "Total number of CSV rows processed by imports",
		},
		[]string{"outcome"},
	)

	// exportTotal counts completed exports.
	exportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_export_total",
			Help: "Total number of product exports",
		},
		[]string{"format", "scope"},
	)
)

// Import row outcomes.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

func recordAudit(action domain.AuditAction, n int) {
	auditEntriesTotal.WithLabelValues(string(action)).Add(float64(n))
}
