// Package metrics exposes Prometheus counters for the money-moving
// paths. Everything here is best-effort observability; nothing reads
// these counters to make decisions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RentalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolshare_rental_transitions_total",
		Help: "Rental status transitions committed, by target status.",
	}, []string{"to"})

	DepositTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolshare_deposit_transitions_total",
		Help: "Deposit status transitions committed, by target status.",
	}, []string{"to"})

	RefundsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolshare_refunds_issued_total",
		Help: "Refunds issued through the payment gateway, by kind.",
	}, []string{"kind"}) // kind: deposit, full

	SweepRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolshare_sweep_rows_total",
		Help: "Rows handled by the scheduled sweeps, by job and outcome.",
	}, []string{"job", "outcome"}) // outcome: processed, refunded, skipped, error
)
