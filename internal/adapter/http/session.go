package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"relief-fund/internal/core/domain"
)

type openSessionRequest struct {
	Accounts []string `json:"accounts"`
}

type openSessionResponse struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Account string `json:"account,omitempty"`
	IsAdmin bool   `json:"is_admin"`
	State   string `json:"state"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleOpenSession creates a session and loads campaigns into it. The
// body is optional; without accounts the server's default wallet is used.
// Naming accounts is refused unless Options.ClientAccounts is set.
func (h *Handler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_json", Message: "invalid JSON"})
		return
	}
	if len(req.Accounts) > 0 && !h.clientAccounts {
		writeJSON(w, http.StatusForbidden, errorBody{
			Error:   "client_accounts_disabled",
			Message: "sessions use the server wallet accounts",
		})
		return
	}
	accounts := make([]domain.AccountID, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		accounts = append(accounts, domain.AccountID(a))
	}
	token, _, err := h.sessions.Open(r.Context(), accounts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, openSessionResponse{Token: token})
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Close(r.Header.Get(SessionHeader))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	uc := sessionFrom(r.Context())
	s := uc.Session()
	writeJSON(w, http.StatusOK, sessionResponse{
		Account: string(s.Account),
		IsAdmin: s.IsAdmin,
		State:   string(uc.State()),
	})
}

func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	uc := sessionFrom(r.Context())
	account, err := uc.Connect(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Account: string(account),
		IsAdmin: uc.Session().IsAdmin,
		State:   string(uc.State()),
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_json", Message: "invalid JSON"})
		return
	}
	if err := sessionFrom(r.Context()).Login(r.Context(), req.Username, req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Logout()
	w.WriteHeader(http.StatusNoContent)
}
