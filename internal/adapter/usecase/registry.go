package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
)

// Factory builds an isolated session whose signer offers accounts.
type Factory func(accounts []domain.AccountID) *FundUseCase

// Limits bounds the registry. Zero fields disable the limit.
type Limits struct {
	// IdleTTL is how long a session may go unused before Sweep drops it.
	IdleTTL time.Duration
	// Max is the number of sessions that may be open at once.
	Max int
}

type entry struct {
	uc       *FundUseCase
	lastUsed time.Time
}

// Registry keeps independent client sessions keyed by random token.
// Sessions share nothing but what the factory injects (the ledger).
type Registry struct {
	factory Factory
	limits  Limits
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

var _ port.SessionRegistry = (*Registry)(nil)

func NewRegistry(factory Factory, limits Limits, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factory:  factory,
		limits:   limits,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Open creates a session and performs its initial campaign load. The
// session is only registered if the load succeeds. A full registry is
// swept once before Open gives up with domain.ErrSessionLimit.
func (r *Registry) Open(ctx context.Context, accounts []domain.AccountID) (string, port.FundUseCase, error) {
	if r.full() {
		r.Sweep()
		if r.full() {
			return "", nil, domain.ErrSessionLimit
		}
	}

	u := r.factory(accounts)
	if err := u.Reload(ctx); err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	// the load ran unlocked, so the cap is checked again
	if r.limits.Max > 0 && len(r.sessions) >= r.limits.Max {
		return "", nil, domain.ErrSessionLimit
	}
	r.sessions[token] = &entry{uc: u, lastUsed: r.now()}
	r.logger.Debug("session opened", slog.Int("sessions", len(r.sessions)))
	return token, u, nil
}

func (r *Registry) full() bool {
	if r.limits.Max <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions) >= r.limits.Max
}

// Get returns the session for token and marks it as used.
func (r *Registry) Get(token string) (port.FundUseCase, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.uc, true
}

// Close forgets a session. It reports whether the token was known.
func (r *Registry) Close(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return false
	}
	delete(r.sessions, token)
	return true
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than Limits.IdleTTL and returns
// how many were removed.
func (r *Registry) Sweep() int {
	if r.limits.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.limits.IdleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for token, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("idle sessions expired", slog.Int("removed", removed), slog.Int("sessions", len(r.sessions)))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.limits.IdleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
