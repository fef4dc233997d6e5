// Package auth provides credential verifiers for the admin session.
package auth

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"relief-fund/internal/core/domain"
)

// BcryptVerifier accepts one username whose password matches a bcrypt
// hash. An empty hash disables admin login entirely.
type BcryptVerifier struct {
	username string
	hash     []byte
}

func NewBcryptVerifier(username, passwordHash string) *BcryptVerifier {
	return &BcryptVerifier{username: username, hash: []byte(passwordHash)}
}

// Verify returns domain.ErrInvalidCredentials unless both values match.
func (v *BcryptVerifier) Verify(_ context.Context, username, password string) error {
	if len(v.hash) == 0 || v.username == "" {
		return domain.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	// always run the hash comparison so a wrong username costs the same
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	if !userOK || passErr != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
