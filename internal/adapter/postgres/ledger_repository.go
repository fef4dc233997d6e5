package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
)

// LedgerRepository implements port.LedgerClient on PostgreSQL. It plays
// the role of the fund contract: campaigns in creation order, donor
// balances and a journal of every accepted transaction. Admin mutations
// are only accepted from the owner account.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	owner   domain.AccountID
	timeout time.Duration
}

var _ port.LedgerClient = (*LedgerRepository)(nil)

// NewLedgerRepository returns a ledger owned by owner. A positive timeout
// bounds every call.
func NewLedgerRepository(pool *pgxpool.Pool, owner domain.AccountID, timeout time.Duration) *LedgerRepository {
	return &LedgerRepository{pool: pool, owner: owner, timeout: timeout}
}

// FetchCampaigns returns all campaigns ordered by creation.
func (r *LedgerRepository) FetchCampaigns(ctx context.Context) ([]domain.CampaignRecord, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
        SELECT name, location, goal::text, amount_raised::text, description
        FROM campaigns
        ORDER BY seq`)
	if err != nil {
		return nil, ledgerError(err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CampaignRecord, error) {
		var (
			rec          domain.CampaignRecord
			goal, raised string
		)
		if err := row.Scan(&rec.Name, &rec.Location, &goal, &raised, &rec.Description); err != nil {
			return rec, err
		}
		var err error
		if rec.Goal, err = domain.ParseAmount(goal); err != nil {
			return rec, fmt.Errorf("goal of %q: %w", rec.Name, err)
		}
		if rec.AmountRaised, err = domain.ParseAmount(raised); err != nil {
			return rec, fmt.Errorf("amount raised of %q: %w", rec.Name, err)
		}
		return rec, nil
	})
	if err != nil {
		return nil, ledgerError(err)
	}
	return records, nil
}

// Submit applies m atomically in a serializable transaction and journals
// it. Nothing is written unless the whole mutation succeeds.
func (r *LedgerRepository) Submit(ctx context.Context, m domain.Approved) (domain.Receipt, error) {
	if m.Mutation() == nil {
		return domain.Receipt{}, domain.NewLedgerError(domain.LedgerTransactionRejected, errors.New("empty mutation"))
	}
	account := m.Account()
	if account == "" {
		return domain.Receipt{}, domain.NewLedgerError(domain.LedgerUserRejected, errors.New("no signing account"))
	}
	if m.Kind().AdminOnly() && account != r.owner {
		return domain.Receipt{}, domain.NewLedgerError(domain.LedgerTransactionRejected,
			fmt.Errorf("account %s is not the fund owner", account))
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return domain.Receipt{}, ledgerError(err)
	}

	receipt := domain.Receipt{
		ID:      uuid.NewString(),
		Kind:    m.Kind(),
		Account: account,
		At:      time.Now().UTC(),
	}
	if err = r.apply(ctx, tx, m.Mutation(), account, &receipt); err == nil {
		err = journal(ctx, tx, receipt)
	}
	if err != nil {
		_ = tx.Rollback(ctx)
		return domain.Receipt{}, ledgerError(err)
	}
	if err = tx.Commit(ctx); err != nil {
		return domain.Receipt{}, ledgerError(err)
	}
	return receipt, nil
}

func (r *LedgerRepository) apply(ctx context.Context, tx pgx.Tx, m domain.Mutation, account domain.AccountID, receipt *domain.Receipt) error {
	switch v := m.(type) {
	case domain.CreateCampaign:
		var position int
		err := tx.QueryRow(ctx, `
            WITH inserted AS (
                INSERT INTO campaigns (name, location, goal, description, created_at, updated_at)
                VALUES ($1, $2, $3::numeric, $4, now(), now())
                RETURNING seq
            )
            SELECT count(*) FROM campaigns`,
			v.Name, v.Location, v.Goal.String(), v.Description).Scan(&position)
		if err != nil {
			return err
		}
		// the outer count does not see the inserted row, so it is the new position
		receipt.CampaignID = &position
		return nil

	case domain.UpdateCampaign:
		seq, _, err := lockPosition(ctx, tx, v.ID)
		if err != nil {
			return err
		}
		receipt.CampaignID = &v.ID
		_, err = tx.Exec(ctx, `
            UPDATE campaigns
            SET name = $1, location = $2, goal = $3::numeric, description = $4, updated_at = now()
            WHERE seq = $5`,
			v.Name, v.Location, v.Goal.String(), v.Description, seq)
		return err

	case domain.DeleteCampaign:
		seq, _, err := lockPosition(ctx, tx, v.ID)
		if err != nil {
			return err
		}
		receipt.CampaignID = &v.ID
		_, err = tx.Exec(ctx, `DELETE FROM campaigns WHERE seq = $1`, seq)
		return err

	case domain.Donate:
		seq, _, err := lockPosition(ctx, tx, v.CampaignID)
		if err != nil {
			return err
		}
		if v.Amount.Sign() <= 0 {
			return domain.NewLedgerError(domain.LedgerTransactionRejected, errors.New("donation must be positive"))
		}
		tag, err := tx.Exec(ctx, `
            UPDATE accounts SET balance = balance - $1::numeric
            WHERE id = $2 AND balance >= $1::numeric`,
			v.Amount.String(), string(account))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.NewLedgerError(domain.LedgerInsufficientFunds,
				fmt.Errorf("account %s cannot cover %s", account, v.Amount))
		}
		_, err = tx.Exec(ctx, `
            UPDATE campaigns SET amount_raised = amount_raised + $1::numeric, updated_at = now()
            WHERE seq = $2`,
			v.Amount.String(), seq)
		receipt.CampaignID = &v.CampaignID
		receipt.Amount = v.Amount
		return err

	case domain.WithdrawFunds:
		seq, raised, err := lockPosition(ctx, tx, v.CampaignID)
		if err != nil {
			return err
		}
		if raised.IsZero() {
			return domain.NewLedgerError(domain.LedgerTransactionRejected, errors.New("no funds to withdraw"))
		}
		_, err = tx.Exec(ctx, `
            INSERT INTO accounts (id, balance) VALUES ($1, $2::numeric)
            ON CONFLICT (id) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`,
			string(account), raised.String())
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE campaigns SET amount_raised = 0, updated_at = now() WHERE seq = $1`, seq)
		receipt.CampaignID = &v.CampaignID
		receipt.Amount = raised
		return err

	default:
		return domain.NewLedgerError(domain.LedgerTransactionRejected, fmt.Errorf("unsupported mutation %T", m))
	}
}

// lockPosition resolves a campaign position to its row and locks it.
func lockPosition(ctx context.Context, tx pgx.Tx, position int) (int64, domain.Amount, error) {
	if position < 0 {
		return 0, domain.Amount{}, domain.NewLedgerError(domain.LedgerTransactionRejected,
			fmt.Errorf("campaign %d does not exist", position))
	}
	var (
		seq    int64
		raised string
	)
	err := tx.QueryRow(ctx, `
        SELECT seq, amount_raised::text FROM campaigns
        ORDER BY seq OFFSET $1 LIMIT 1
        FOR UPDATE`, position).Scan(&seq, &raised)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.Amount{}, domain.NewLedgerError(domain.LedgerTransactionRejected,
			fmt.Errorf("campaign %d does not exist", position))
	}
	if err != nil {
		return 0, domain.Amount{}, err
	}
	amount, err := domain.ParseAmount(raised)
	return seq, amount, err
}

func journal(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO ledger_transactions (id, kind, account_id, campaign_position, amount, created_at)
        VALUES ($1, $2, $3, $4, $5::numeric, $6)`,
		receipt.ID, string(receipt.Kind), string(receipt.Account), receipt.CampaignID, receipt.Amount.String(), receipt.At)
	return err
}

// Balance returns the ledger balance of account, zero if unknown.
func (r *LedgerRepository) Balance(ctx context.Context, account domain.AccountID) (domain.Amount, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var balance string
	err := r.pool.QueryRow(ctx, `SELECT balance::text FROM accounts WHERE id = $1`, string(account)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Amount{}, nil
	}
	if err != nil {
		return domain.Amount{}, ledgerError(err)
	}
	return domain.ParseAmount(balance)
}

func (r *LedgerRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// ledgerError maps database failures onto the ledger taxonomy.
func ledgerError(err error) error {
	var lerr *domain.LedgerError
	if errors.As(err, &lerr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewLedgerError(domain.LedgerTimeout, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// every server-side refusal (serialization conflicts, constraint
		// violations) is a rejected transaction; the caller may retry
		return domain.NewLedgerError(domain.LedgerTransactionRejected, err)
	}
	return domain.NewLedgerError(domain.LedgerNetworkError, err)
}
