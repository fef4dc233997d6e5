package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"relief-fund/internal/core/domain"
)

// SeedCampaign is a demo campaign; Goal is in whole units.
type SeedCampaign struct {
	Name        string
	Location    string
	Goal        string
	Description string
}

// DemoCampaigns are inserted by Seed when the ledger has no campaigns.
var DemoCampaigns = []SeedCampaign{
	{"Assam Flood Relief", "Assam", "25", "Boats, dry rations and clean water for displaced families."},
	{"Gujarat Earthquake Rebuild", "Kutch, Gujarat", "50", "Temporary shelters and school reconstruction."},
	{"Odisha Cyclone Response", "Puri, Odisha", "10", "Medical camps and tarpaulins after landfall."},
}

// Seed inserts demo campaigns into an empty ledger and credits each of
// accounts with balance whole units. It is idempotent for campaigns and
// tops up balances on every run.
func Seed(ctx context.Context, pool *pgxpool.Pool, decimals uint8, accounts []domain.AccountID, balance string) error {
	credit, err := domain.ParseMajor(balance, decimals)
	if err != nil {
		return fmt.Errorf("seed balance: %w", err)
	}
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var existing int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM campaigns`).Scan(&existing); err != nil {
			return err
		}
		if existing == 0 {
			for _, c := range DemoCampaigns {
				goal, err := domain.ParseMajor(c.Goal, decimals)
				if err != nil {
					return fmt.Errorf("seed goal of %q: %w", c.Name, err)
				}
				_, err = tx.Exec(ctx, `
                    INSERT INTO campaigns (name, location, goal, description)
                    VALUES ($1, $2, $3::numeric, $4)`,
					c.Name, c.Location, goal.String(), c.Description)
				if err != nil {
					return err
				}
			}
		}
		for _, a := range accounts {
			_, err := tx.Exec(ctx, `
                INSERT INTO accounts (id, balance) VALUES ($1, $2::numeric)
                ON CONFLICT (id) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`,
				string(a), credit.String())
			if err != nil {
				return err
			}
		}
		return nil
	})
}
