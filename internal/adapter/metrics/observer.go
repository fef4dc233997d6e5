// Package metrics exports reconciliation events to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
)

// Observer implements port.Observer. The zero value counts nothing until
// Register is called; Register is idempotent.
type Observer struct {
	mutations *prometheus.CounterVec
	durations *prometheus.HistogramVec
	refetches *prometheus.CounterVec
	cached    prometheus.Gauge

	registerOnce sync.Once
}

var _ port.Observer = (*Observer)(nil)

// NewObserver returns an observer registered with registry. A nil
// registry yields an observer that drops everything.
func NewObserver(registry prometheus.Registerer) *Observer {
	o := &Observer{}
	o.Register(registry)
	return o
}

func (o *Observer) Register(registry prometheus.Registerer) {
	if registry == nil {
		return
	}
	o.registerOnce.Do(func() {
		factory := promauto.With(registry)

		o.mutations = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relief_fund_mutations_total",
			Help: "Mutations processed by the reconciliation controller, by kind and outcome",
		}, []string{"kind", "outcome"})

		o.durations = factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relief_fund_mutation_duration_seconds",
			Help:    "Time from validation to reconciled cache",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"kind"})

		o.refetches = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relief_fund_refetches_total",
			Help: "Ledger campaign reads, by result",
		}, []string{"result"})

		o.cached = factory.NewGauge(prometheus.GaugeOpts{
			Name: "relief_fund_campaigns_last_fetched",
			Help: "Number of campaigns returned by the most recent successful fetch",
		})
	})
}

func (o *Observer) MutationFinished(kind domain.MutationKind, outcome port.Outcome, elapsed time.Duration) {
	if o.mutations == nil {
		return
	}
	o.mutations.WithLabelValues(string(kind), string(outcome)).Inc()
	if outcome != port.OutcomeBusy {
		o.durations.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
	}
}

func (o *Observer) Refetched(ok bool, campaigns int) {
	if o.refetches == nil {
		return
	}
	if !ok {
		o.refetches.WithLabelValues("error").Inc()
		return
	}
	o.refetches.WithLabelValues("ok").Inc()
	o.cached.Set(float64(campaigns))
}
