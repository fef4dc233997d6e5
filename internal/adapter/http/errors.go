package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"relief-fund/internal/core/domain"
)

// errorBody carries a machine-readable reason so clients can branch on it.
type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

var reasonStatus = map[domain.Reason]int{
	domain.ReasonUnauthorized:      http.StatusForbidden,
	domain.ReasonInvalidField:      http.StatusBadRequest,
	domain.ReasonCampaignClosed:    http.StatusConflict,
	domain.ReasonAmountTooSmall:    http.StatusBadRequest,
	domain.ReasonNothingToWithdraw: http.StatusConflict,
	domain.ReasonNotFound:          http.StatusNotFound,
	domain.ReasonNotConnected:      http.StatusPreconditionFailed,
}

var ledgerStatus = map[domain.LedgerErrorKind]int{
	domain.LedgerNoWallet:            http.StatusPreconditionFailed,
	domain.LedgerUserRejected:        http.StatusUnprocessableEntity,
	domain.LedgerTransactionRejected: http.StatusUnprocessableEntity,
	domain.LedgerInsufficientFunds:   http.StatusPaymentRequired,
	domain.LedgerNetworkError:        http.StatusBadGateway,
	domain.LedgerTimeout:             http.StatusGatewayTimeout,
}

func errorResponse(err error) (int, errorBody) {
	var (
		verr *domain.ValidationError
		lerr *domain.LedgerError
	)
	switch {
	case errors.As(err, &verr):
		return statusOr(reasonStatus[verr.Reason]), errorBody{Error: string(verr.Reason), Field: verr.Field, Message: err.Error()}
	case errors.Is(err, domain.ErrBusy):
		return http.StatusLocked, errorBody{Error: "busy", Message: err.Error()}
	case errors.Is(err, domain.ErrSessionLimit):
		return http.StatusServiceUnavailable, errorBody{Error: "session_limit", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Error: "invalid_credentials", Message: "invalid credentials"}
	case errors.As(err, &lerr):
		return statusOr(ledgerStatus[lerr.Kind]), errorBody{Error: string(lerr.Kind), Message: err.Error()}
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, errorBody{Error: "canceled", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal error"}
	}
}

func statusOr(status int) int {
	if status == 0 {
		return http.StatusInternalServerError
	}
	return status
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// encoding should rarely fail and the status is already sent
	_ = json.NewEncoder(w).Encode(v)
}
