package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"relief-fund/internal/core/domain"
)

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	v := NewBcryptVerifier("admin", string(hash))
	ctx := context.Background()

	assert.NoError(t, v.Verify(ctx, "admin", "correct horse"))
	assert.ErrorIs(t, v.Verify(ctx, "admin", "admin123"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, v.Verify(ctx, "root", "correct horse"), domain.ErrInvalidCredentials)
}

func TestBcryptVerifierDisabledWithoutHash(t *testing.T) {
	v := NewBcryptVerifier("admin", "")
	assert.ErrorIs(t, v.Verify(context.Background(), "admin", ""), domain.ErrInvalidCredentials)
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, NewBcryptVerifier("admin", h).Verify(context.Background(), "admin", "pw"))
}
