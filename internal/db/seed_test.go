package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relief-fund/internal/core/domain"
)

func TestDemoCampaignsAreValid(t *testing.T) {
	v := domain.Validator{MinDonation: domain.NewAmount(1)}
	for _, c := range DemoCampaigns {
		goal, err := domain.ParseMajor(c.Goal, 18)
		require.NoError(t, err, c.Name)

		_, err = v.Validate(domain.CreateCampaign{
			Name:        c.Name,
			Location:    c.Location,
			Goal:        goal,
			Description: c.Description,
		}, nil, domain.Session{Account: "0xowner", IsAdmin: true})
		assert.NoError(t, err, c.Name)
	}
}

func TestSeedRejectsBalance(t *testing.T) {
	err := Seed(context.Background(), nil, 18, nil, "1.5.0")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
