package configs

import (
	"fmt"
	"time"

	"relief-fund/internal/core/domain"
)

// Ledger configures the fund ledger and unit conversion. Decimals is the
// number of minor units per whole unit as a power of ten (18 for ether).
// MinDonation is expressed in whole units. Owner is the only account the
// ledger accepts admin mutations from. Accounts are offered by the
// server-side wallet. ClientAccounts lets a session bring its own accounts
// instead; the ledger then trusts whatever account a caller names.
type Ledger struct {
	Decimals    uint8         `env:"DECIMALS" envDefault:"18"`
	MinDonation string        `env:"MIN_DONATION" envDefault:"0.01"`
	Owner       string        `env:"OWNER"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Accounts    []string      `env:"ACCOUNTS" envSeparator:","`

	ClientAccounts bool `env:"CLIENT_ACCOUNTS" envDefault:"false"`
}

// MinDonationAmount converts MinDonation to minor units. A minimum that
// is not strictly positive is rejected.
func (c Ledger) MinDonationAmount() (domain.Amount, error) {
	a, err := domain.ParseMajor(c.MinDonation, c.Decimals)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("LEDGER_MIN_DONATION: %w", err)
	}
	if a.Sign() <= 0 {
		return domain.Amount{}, fmt.Errorf("LEDGER_MIN_DONATION must be positive, got %q", c.MinDonation)
	}
	return a, nil
}

// AccountIDs returns the configured default signer accounts.
func (c Ledger) AccountIDs() []domain.AccountID {
	out := make([]domain.AccountID, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		if a != "" {
			out = append(out, domain.AccountID(a))
		}
	}
	return out
}
