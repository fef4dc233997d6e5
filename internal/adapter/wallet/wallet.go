// Package wallet implements port.SignerGateway over a fixed set of
// accounts, standing in for a browser wallet on the server side.
package wallet

import (
	"context"
	"sync"

	"relief-fund/internal/core/domain"
)

// Wallet offers accounts to Connect. The first account is selected, as a
// browser wallet returns the active account first.
type Wallet struct {
	accounts []domain.AccountID

	mu        sync.RWMutex
	connected domain.AccountID
}

// New returns a wallet holding the non-empty entries of accounts.
func New(accounts ...domain.AccountID) *Wallet {
	w := &Wallet{}
	for _, a := range accounts {
		if a != "" {
			w.accounts = append(w.accounts, a)
		}
	}
	return w
}

// Connect selects the first account. It fails with domain.ErrNoWallet
// when no account is available.
func (w *Wallet) Connect(ctx context.Context) (domain.AccountID, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewLedgerError(domain.LedgerUserRejected, err)
	}
	if len(w.accounts) == 0 {
		return "", domain.ErrNoWallet
	}
	w.mu.Lock()
	w.connected = w.accounts[0]
	w.mu.Unlock()
	return w.accounts[0], nil
}

func (w *Wallet) CurrentAccount() (domain.AccountID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected, w.connected != ""
}
