package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
	"relief-fund/internal/core/session"
	"relief-fund/internal/core/store"
)

// Deps are the collaborators of one client session. Ledger, Signer and
// Session are required; the rest default to no-op or fresh values.
type Deps struct {
	Ledger    port.LedgerClient
	Signer    port.SignerGateway
	Session   *session.Admin
	Store     *store.Campaigns
	Validator domain.Validator
	Observer  port.Observer
	Logger    *slog.Logger
}

// FundUseCase is the reconciliation controller. Every mutation runs
// validate, submit, refetch and replace in that order, and at most one
// operation touching the ledger is in flight per instance. The cache is
// only ever replaced from a ledger read that followed a confirmed write
// or an explicit reload.
type FundUseCase struct {
	ledger    port.LedgerClient
	signer    port.SignerGateway
	session   *session.Admin
	store     *store.Campaigns
	validator domain.Validator
	observer  port.Observer
	logger    *slog.Logger

	mu    sync.Mutex
	state domain.ReconcileState
}

var _ port.FundUseCase = (*FundUseCase)(nil)

// NewFundUseCase wires a controller from deps.
func NewFundUseCase(deps Deps) *FundUseCase {
	u := &FundUseCase{
		ledger:    deps.Ledger,
		signer:    deps.Signer,
		session:   deps.Session,
		store:     deps.Store,
		validator: deps.Validator,
		observer:  deps.Observer,
		logger:    deps.Logger,
		state:     domain.StateIdle,
	}
	if u.store == nil {
		u.store = store.NewCampaigns()
	}
	if u.observer == nil {
		u.observer = port.NopObserver{}
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}
	return u
}

// Connect asks the signer for an account and records it in the session.
func (u *FundUseCase) Connect(ctx context.Context) (domain.AccountID, error) {
	account, err := u.signer.Connect(ctx)
	if err != nil {
		return "", classify(err)
	}
	if account == "" {
		return "", domain.ErrNoWallet
	}
	u.session.SetAccount(account)
	u.logger.Info("wallet connected", slog.String("account", string(account)))
	return account, nil
}

func (u *FundUseCase) Login(ctx context.Context, username, password string) error {
	if err := u.session.Login(ctx, username, password); err != nil {
		u.logger.Warn("admin login failed", slog.String("username", username))
		return err
	}
	u.logger.Info("admin logged in", slog.String("username", username))
	return nil
}

func (u *FundUseCase) Logout() {
	u.session.Logout()
}

func (u *FundUseCase) Session() domain.Session {
	return u.session.Snapshot()
}

// State reports the current phase of the controller.
func (u *FundUseCase) State() domain.ReconcileState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *FundUseCase) Campaigns() domain.Overview {
	return u.store.Overview()
}

func (u *FundUseCase) Campaign(id int) (domain.Campaign, bool) {
	return u.store.ByID(id)
}

func (u *FundUseCase) MinDonation() domain.Amount {
	return u.validator.MinDonation
}

// Reload replaces the cache with a fresh ledger read. It takes the same
// in-flight slot as a mutation, so it fails with domain.ErrBusy while one
// is running.
func (u *FundUseCase) Reload(ctx context.Context) error {
	if !u.begin(domain.StateRefetching) {
		return domain.ErrBusy
	}
	defer u.transition(domain.StateIdle)
	return u.refetch(ctx)
}

// Execute runs one mutation through the reconciliation cycle. Validation
// failures return *domain.ValidationError without contacting the ledger.
// Submit failures return *domain.LedgerError and leave the cache as it
// was. A confirmed write whose refetch fails returns the receipt together
// with *domain.ReconcileError.
func (u *FundUseCase) Execute(ctx context.Context, m domain.Mutation) (domain.Receipt, error) {
	if m == nil {
		return domain.Receipt{}, errors.New("nil mutation")
	}
	kind := m.Kind()
	start := time.Now()
	if !u.begin(domain.StateValidating) {
		u.observer.MutationFinished(kind, port.OutcomeBusy, 0)
		return domain.Receipt{}, domain.ErrBusy
	}
	defer u.transition(domain.StateIdle)

	approved, err := u.validator.Validate(m, u.store, u.session.Snapshot())
	if err != nil {
		u.observer.MutationFinished(kind, port.OutcomeRejected, time.Since(start))
		u.logger.Debug("mutation rejected", slog.String("kind", string(kind)), slog.Any("error", err))
		return domain.Receipt{}, err
	}
	if err = ctx.Err(); err != nil {
		u.observer.MutationFinished(kind, port.OutcomeRejected, time.Since(start))
		return domain.Receipt{}, err
	}

	// A dispatched submit cannot be recalled, so caller cancellation no
	// longer applies from here on.
	ctx = context.WithoutCancel(ctx)

	u.transition(domain.StateSubmitting)
	receipt, err := u.ledger.Submit(ctx, approved)
	if err != nil {
		err = classify(err)
		u.observer.MutationFinished(kind, port.OutcomeLedger, time.Since(start))
		u.logger.Warn("ledger submit failed",
			slog.String("kind", string(kind)),
			slog.String("account", string(approved.Account())),
			slog.Any("error", err))
		return domain.Receipt{}, err
	}

	u.transition(domain.StateRefetching)
	if err = u.refetch(ctx); err != nil {
		u.observer.MutationFinished(kind, port.OutcomeStale, time.Since(start))
		u.logger.Error("refetch after confirmed submit failed",
			slog.String("kind", string(kind)),
			slog.String("receipt", receipt.ID),
			slog.Any("error", err))
		return receipt, &domain.ReconcileError{Receipt: receipt, Err: err}
	}

	u.observer.MutationFinished(kind, port.OutcomeConfirmed, time.Since(start))
	u.logger.Info("mutation confirmed",
		slog.String("kind", string(kind)),
		slog.String("receipt", receipt.ID),
		slog.Duration("elapsed", time.Since(start)))
	return receipt, nil
}

func (u *FundUseCase) refetch(ctx context.Context) error {
	records, err := u.ledger.FetchCampaigns(ctx)
	if err != nil {
		u.observer.Refetched(false, 0)
		return classify(err)
	}
	u.store.Replace(records)
	u.observer.Refetched(true, len(records))
	return nil
}

// begin claims the in-flight slot. It fails if the controller is not idle.
func (u *FundUseCase) begin(state domain.ReconcileState) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != domain.StateIdle {
		return false
	}
	u.state = state
	return true
}

func (u *FundUseCase) transition(state domain.ReconcileState) {
	u.mu.Lock()
	u.state = state
	u.mu.Unlock()
}

// classify maps arbitrary collaborator errors onto the ledger taxonomy.
// No response within the deadline counts as a timeout.
func classify(err error) error {
	var lerr *domain.LedgerError
	if errors.As(err, &lerr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewLedgerError(domain.LedgerTimeout, err)
	}
	return domain.NewLedgerError(domain.LedgerNetworkError, err)
}
