package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"relief-fund/internal/core/port"
)

// SessionHeader carries the token returned by POST /api/v1/sessions.
const SessionHeader = "X-Session-Token"

// Handler is the inbound HTTP adapter. Each request is served against the
// client session named by SessionHeader; sessions never share state
// other than the ledger behind them.
type Handler struct {
	sessions       port.SessionRegistry
	decimals       uint8
	clientAccounts bool
	logger         *slog.Logger
	router         chi.Router
}

// Options configures optional parts of the router.
type Options struct {
	// Decimals converts between whole and minor units in requests and
	// responses.
	Decimals uint8
	// ClientAccounts lets POST /api/v1/sessions name the signer accounts.
	// Any caller could then sign as any account, so it is for demos only.
	ClientAccounts bool
	// MetricsPath mounts Metrics when both are set.
	MetricsPath string
	Metrics     http.Handler
}

// NewHandler creates a handler with all routes configured.
func NewHandler(sessions port.SessionRegistry, logger *slog.Logger, opts Options) *Handler {
	h := &Handler{
		sessions:       sessions,
		decimals:       opts.Decimals,
		clientAccounts: opts.ClientAccounts,
		logger:         logger,
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	if opts.Metrics != nil && opts.MetricsPath != "" {
		r.Method(http.MethodGet, opts.MetricsPath, opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", h.handleOpenSession)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Delete("/sessions", h.handleCloseSession)
			r.Get("/session", h.handleSession)
			r.Post("/wallet/connect", h.handleConnect)
			r.Post("/admin/login", h.handleLogin)
			r.Post("/admin/logout", h.handleLogout)

			r.Get("/campaigns", h.handleListCampaigns)
			r.Post("/campaigns", h.handleCreateCampaign)
			r.Post("/campaigns/reload", h.handleReload)
			r.Get("/campaigns/{id}", h.handleGetCampaign)
			r.Put("/campaigns/{id}", h.handleUpdateCampaign)
			r.Delete("/campaigns/{id}", h.handleDeleteCampaign)
			r.Post("/campaigns/{id}/donations", h.handleDonate)
			r.Post("/campaigns/{id}/withdrawals", h.handleWithdraw)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

type sessionKey struct{}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(SessionHeader)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing_session", Message: "missing " + SessionHeader})
			return
		}
		uc, ok := h.sessions.Get(token)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unknown_session", Message: "session not found"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, uc)))
	})
}

func sessionFrom(ctx context.Context) port.FundUseCase {
	uc, _ := ctx.Value(sessionKey{}).(port.FundUseCase)
	return uc
}
