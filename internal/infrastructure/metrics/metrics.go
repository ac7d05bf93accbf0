package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expenditure metrics
	ExpendituresCreated prometheus.Counter
	ExpendituresDeleted prometheus.Counter
	ExpenditureAmount   prometheus.Histogram
	SplitsAllocated     prometheus.Counter
	AllocationErrors    *prometheus.CounterVec

	// Settlement metrics
	SplitsSettled       prometheus.Counter
	PaymentsSettled     prometheus.Counter
	SettlementConflicts *prometheus.CounterVec
	SettlementDuration  prometheus.Histogram

	// Payment metrics
	PaymentsCreated prometheus.Counter

	// Balance metrics
	BalanceComputations prometheus.Counter
	BalanceCacheHits    prometheus.Counter
	BalanceCacheMisses  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ExpendituresCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_expenditures_created_total",
			Help: "Total number of expenditures created",
		}),
		ExpendituresDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_expenditures_deleted_total",
			Help: "Total number of expenditures deleted",
		}),
		ExpenditureAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitit_expenditure_amount_minor_units",
			Help:    "Expenditure amounts in minor units",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 1000000},
		}),
		SplitsAllocated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_splits_allocated_total",
			Help: "Total number of splits allocated",
		}),
		AllocationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitit_allocation_errors_total",
				Help: "Total number of allocation failures by type",
			},
			[]string{"error_type"},
		),

		SplitsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_splits_settled_total",
			Help: "Total number of splits settled",
		}),
		PaymentsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_payments_settled_total",
			Help: "Total number of payments settled",
		}),
		SettlementConflicts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitit_settlement_conflicts_total",
				Help: "Total number of settlement attempts on already settled records",
			},
			[]string{"record_kind"},
		),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitit_settlement_duration_seconds",
			Help:    "Duration of settlement operations",
			Buckets: prometheus.DefBuckets,
		}),

		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_payments_created_total",
			Help: "Total number of payments created",
		}),

		BalanceComputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_balance_computations_total",
			Help: "Total number of balance reports computed",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_balance_cache_hits_total",
			Help: "Total number of balance reports served from cache",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitit_balance_cache_misses_total",
			Help: "Total number of balance cache misses",
		}),
	}
}
