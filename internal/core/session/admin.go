// Package session tracks the wallet account and admin role of one client.
package session

import (
	"context"
	"errors"
	"sync"

	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
)

// Admin holds process-local session state. The admin flag only gates
// which mutations the validator approves; the ledger enforces its own
// access control independently. Nothing here persists across restarts.
type Admin struct {
	verifier port.CredentialVerifier

	mu      sync.RWMutex
	account domain.AccountID
	isAdmin bool
}

// NewAdmin returns a session that authenticates through verifier.
func NewAdmin(verifier port.CredentialVerifier) *Admin {
	return &Admin{verifier: verifier}
}

// Login sets the admin flag when the verifier accepts the pair. A failed
// attempt leaves an existing admin flag as it was.
func (a *Admin) Login(ctx context.Context, username, password string) error {
	if a.verifier == nil {
		return domain.ErrInvalidCredentials
	}
	if err := a.verifier.Verify(ctx, username, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return err
		}
		return errors.Join(domain.ErrInvalidCredentials, err)
	}
	a.mu.Lock()
	a.isAdmin = true
	a.mu.Unlock()
	return nil
}

// Logout clears the admin flag and keeps the connected account.
func (a *Admin) Logout() {
	a.mu.Lock()
	a.isAdmin = false
	a.mu.Unlock()
}

// SetAccount records the account the signer connected.
func (a *Admin) SetAccount(account domain.AccountID) {
	a.mu.Lock()
	a.account = account
	a.mu.Unlock()
}

// Snapshot returns a consistent copy of the session state.
func (a *Admin) Snapshot() domain.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return domain.Session{Account: a.account, IsAdmin: a.isAdmin}
}
