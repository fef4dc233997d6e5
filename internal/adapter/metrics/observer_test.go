package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
)

func TestObserverCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := NewObserver(reg)
	o.Register(reg) // second registration is a no-op

	o.MutationFinished(domain.KindDonate, port.OutcomeConfirmed, 20*time.Millisecond)
	o.MutationFinished(domain.KindDonate, port.OutcomeConfirmed, 30*time.Millisecond)
	o.MutationFinished(domain.KindDonate, port.OutcomeBusy, 0)
	o.Refetched(true, 4)
	o.Refetched(false, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.mutations.WithLabelValues("donate", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.mutations.WithLabelValues("donate", "busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.refetches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.refetches.WithLabelValues("error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(o.cached))
	assert.Equal(t, 1, testutil.CollectAndCount(o.durations))
}

func TestUnregisteredObserverIsInert(t *testing.T) {
	o := NewObserver(nil)
	assert.NotPanics(t, func() {
		o.MutationFinished(domain.KindWithdrawFunds, port.OutcomeRejected, time.Second)
		o.Refetched(true, 1)
	})
}
