package port

import (
	"context"

	"relief-fund/internal/core/domain"
)

// LedgerClient is the only channel to the authoritative ledger. It is an
// outbound port; implementations own their timeouts and must report
// failures as *domain.LedgerError.
type LedgerClient interface {
	// FetchCampaigns returns every live campaign in the ledger's canonical
	// order. The position of a record is its campaign id.
	FetchCampaigns(ctx context.Context) ([]domain.CampaignRecord, error)
	// Submit applies an approved mutation signed by its account. Callers
	// must not assume any effect until it returns a receipt.
	Submit(ctx context.Context, m domain.Approved) (domain.Receipt, error)
}

// SignerGateway wraps the wallet connection.
type SignerGateway interface {
	// Connect requests account access and returns the selected account.
	// It fails with domain.ErrNoWallet or domain.ErrUserRejected.
	Connect(ctx context.Context) (domain.AccountID, error)
	// CurrentAccount returns the connected account, if any.
	CurrentAccount() (domain.AccountID, bool)
}

// CredentialVerifier decides whether a username/password pair grants the
// admin role. It returns domain.ErrInvalidCredentials on mismatch.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}
