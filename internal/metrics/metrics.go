// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitledger"

// Metrics holds the server's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	expenses     *prometheus.CounterVec
	removed      prometheus.Counter
	driftMembers prometheus.Counter
	reconciles   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rpcRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		expenses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_recorded_total",
			Help:      "Expenses recorded by split method. Settlements are recorded as exact.",
		}, []string{"split_method", "kind"}),
		removed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_removed_total",
			Help:      "Expenses removed from group histories.",
		}),
		driftMembers: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_drift_members_total",
			Help:      "Cached member balances corrected by reconciliation.",
		}),
		reconciles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Reconciliation runs by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// ExpenseRecorded counts a stored expense. kind is "expense" or "settlement".
func (m *Metrics) ExpenseRecorded(splitMethod, kind string) {
	if m == nil {
		return
	}
	m.expenses.WithLabelValues(splitMethod, kind).Inc()
}

// ExpenseRemoved counts a deleted expense.
func (m *Metrics) ExpenseRemoved() {
	if m == nil {
		return
	}
	m.removed.Inc()
}

// Reconciled counts a reconciliation run and the members it corrected.
func (m *Metrics) Reconciled(drifted int) {
	if m == nil {
		return
	}
	outcome := "clean"
	if drifted > 0 {
		outcome = "drift"
		m.driftMembers.Add(float64(drifted))
	}
	m.reconciles.WithLabelValues(outcome).Inc()
}
