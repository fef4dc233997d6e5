package port

import (
	"time"

	"relief-fund/internal/core/domain"
)

// Outcome labels the end state of a reconciliation attempt.
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeRejected  Outcome = "rejected"
	OutcomeLedger    Outcome = "ledger_error"
	OutcomeBusy      Outcome = "busy"
	OutcomeStale     Outcome = "stale"
)

// Observer receives reconciliation events, typically for metrics.
type Observer interface {
	MutationFinished(kind domain.MutationKind, outcome Outcome, elapsed time.Duration)
	Refetched(ok bool, campaigns int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) MutationFinished(domain.MutationKind, Outcome, time.Duration) {}
func (NopObserver) Refetched(bool, int)                                         {}
