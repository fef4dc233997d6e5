package domain

import (
	"errors"
	"fmt"
)

// Reason identifies why the validator rejected a mutation.
type Reason string

const (
	ReasonUnauthorized      Reason = "unauthorized"
	ReasonInvalidField      Reason = "invalid_field"
	ReasonCampaignClosed    Reason = "campaign_closed"
	ReasonAmountTooSmall    Reason = "amount_too_small"
	ReasonNothingToWithdraw Reason = "nothing_to_withdraw"
	ReasonNotFound          Reason = "not_found"
	ReasonNotConnected      Reason = "not_connected"
)

// ValidationError is a local rejection. It never reaches the ledger.
type ValidationError struct {
	Reason Reason
	// Field is set for ReasonInvalidField.
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Reason, e.Field)
	}
	return fmt.Sprintf("validation: %s", e.Reason)
}

// Is matches on Reason only, so errors.Is(err, ErrInvalidField) holds for
// every field.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

var (
	ErrUnauthorized      = &ValidationError{Reason: ReasonUnauthorized}
	ErrInvalidField      = &ValidationError{Reason: ReasonInvalidField}
	ErrCampaignClosed    = &ValidationError{Reason: ReasonCampaignClosed}
	ErrAmountTooSmall    = &ValidationError{Reason: ReasonAmountTooSmall}
	ErrNothingToWithdraw = &ValidationError{Reason: ReasonNothingToWithdraw}
	ErrNotFound          = &ValidationError{Reason: ReasonNotFound}
	ErrNotConnected      = &ValidationError{Reason: ReasonNotConnected}
)

// InvalidField returns a rejection naming the offending field.
func InvalidField(field string) *ValidationError {
	return &ValidationError{Reason: ReasonInvalidField, Field: field}
}

// LedgerErrorKind classifies failures reported by the ledger or signer.
type LedgerErrorKind string

const (
	LedgerNoWallet            LedgerErrorKind = "no_wallet"
	LedgerUserRejected        LedgerErrorKind = "user_rejected"
	LedgerTransactionRejected LedgerErrorKind = "transaction_rejected"
	LedgerInsufficientFunds   LedgerErrorKind = "insufficient_funds"
	LedgerNetworkError        LedgerErrorKind = "network_error"
	LedgerTimeout             LedgerErrorKind = "timeout"
)

// LedgerError is a failure of the external ledger. The campaign cache is
// unchanged whenever one is returned from a mutation.
type LedgerError struct {
	Kind  LedgerErrorKind
	Cause error
}

func (e *LedgerError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("ledger: %s", e.Kind)
	}
	return fmt.Sprintf("ledger: %s: %v", e.Kind, e.Cause)
}

func (e *LedgerError) Unwrap() error { return e.Cause }

func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNoWallet            = &LedgerError{Kind: LedgerNoWallet}
	ErrUserRejected        = &LedgerError{Kind: LedgerUserRejected}
	ErrTransactionRejected = &LedgerError{Kind: LedgerTransactionRejected}
	ErrInsufficientFunds   = &LedgerError{Kind: LedgerInsufficientFunds}
	ErrNetwork             = &LedgerError{Kind: LedgerNetworkError}
	ErrTimeout             = &LedgerError{Kind: LedgerTimeout}
)

// NewLedgerError wraps cause with the given kind.
func NewLedgerError(kind LedgerErrorKind, cause error) *LedgerError {
	return &LedgerError{Kind: kind, Cause: cause}
}

// ReconcileError reports a mutation the ledger confirmed whose follow-up
// refetch failed. The cache still holds the previous fetch.
type ReconcileError struct {
	Receipt Receipt
	Err     error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("refetch after receipt %s: %v", e.Receipt.ID, e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }

var (
	// ErrBusy rejects a request while another mutation is in flight.
	ErrBusy = errors.New("another operation is in flight")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionLimit refuses a new client session when the registry is full.
	ErrSessionLimit = errors.New("too many open sessions")
)
