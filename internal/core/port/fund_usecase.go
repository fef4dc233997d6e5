package port

import (
	"context"

	"relief-fund/internal/core/domain"
)

// FundUseCase defines the operations available to one client session. This
// interface is the primary port into the reconciliation core.
type FundUseCase interface {
	// Connect asks the signer for an account and attaches it to the session.
	Connect(ctx context.Context) (domain.AccountID, error)
	// Login grants the admin role when the verifier accepts the credentials.
	Login(ctx context.Context, username, password string) error
	// Logout clears the admin role. The wallet stays connected.
	Logout()
	Session() domain.Session
	State() domain.ReconcileState

	// Reload replaces the cache with a fresh ledger read.
	Reload(ctx context.Context) error
	// Execute validates, submits and reconciles one mutation. At most one
	// call is in flight; others fail with domain.ErrBusy.
	Execute(ctx context.Context, m domain.Mutation) (domain.Receipt, error)

	Campaigns() domain.Overview
	Campaign(id int) (domain.Campaign, bool)
	// MinDonation is the smallest donation the validator accepts.
	MinDonation() domain.Amount
}

// SessionRegistry tracks independent client sessions by opaque token.
type SessionRegistry interface {
	// Open creates a session whose signer offers the given accounts (or the
	// configured defaults when empty) and performs the initial load.
	Open(ctx context.Context, accounts []domain.AccountID) (string, FundUseCase, error)
	Get(token string) (FundUseCase, bool)
	Close(token string) bool
}
