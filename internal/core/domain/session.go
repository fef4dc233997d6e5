package domain

import "time"

// AccountID is an opaque signer identity obtained from the wallet.
type AccountID string

// Session is a snapshot of process-local session state. An empty Account
// means no wallet is connected.
type Session struct {
	Account AccountID
	IsAdmin bool
}

func (s Session) Connected() bool {
	return s.Account != ""
}

// Receipt confirms a mutation accepted by the ledger.
type Receipt struct {
	ID         string
	Kind       MutationKind
	Account    AccountID
	CampaignID *int
	Amount     Amount
	At         time.Time
}

// ReconcileState is the phase of the reconciliation controller.
type ReconcileState string

const (
	StateIdle       ReconcileState = "idle"
	StateValidating ReconcileState = "validating"
	StateSubmitting ReconcileState = "submitting"
	StateRefetching ReconcileState = "refetching"
)
