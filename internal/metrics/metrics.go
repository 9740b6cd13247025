// Package metrics exposes application-level prometheus instruments for the
// billing engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics counts the outcomes of roster-wide billing operations.
type Metrics struct {
	SyncOps          prometheus.Counter
	SyncFailures     prometheus.Counter
	FeeChunks        prometheus.Counter
	FeeChunkFailures prometheus.Counter
}

// New registers the billing counters with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SyncOps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tesoro_ledger_sync_ops_total",
			Help: "Ledger entries created or amount-corrected by debt sync.",
		}),
		SyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tesoro_ledger_sync_failures_total",
			Help: "Members whose debt sync batch failed.",
		}),
		FeeChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tesoro_extra_fee_chunks_total",
			Help: "Committed extra-fee batch chunks.",
		}),
		FeeChunkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tesoro_extra_fee_chunk_failures_total",
			Help: "Extra-fee batch chunks that failed to commit.",
		}),
	}
	reg.MustRegister(m.SyncOps, m.SyncFailures, m.FeeChunks, m.FeeChunkFailures)
	return m
}

func provide() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// Module wires the billing counters against the default registry.
var Module = fx.Module("metrics",
	fx.Provide(provide),
)
