package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"relief-fund/internal/adapter/usecase"
	"relief-fund/internal/adapter/wallet"
	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port/mocks"
	"relief-fund/internal/core/session"
)

type server struct {
	ledger   *mocks.MockLedgerClient
	verifier *mocks.MockCredentialVerifier
	handler  http.Handler
}

func newServer(t *testing.T) *server {
	t.Helper()
	return newServerWith(t, Options{Decimals: 2})
}

func newServerWith(t *testing.T, opts Options) *server {
	t.Helper()
	s := &server{
		ledger:   mocks.NewMockLedgerClient(t),
		verifier: mocks.NewMockCredentialVerifier(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := usecase.NewRegistry(func(accounts []domain.AccountID) *usecase.FundUseCase {
		if len(accounts) == 0 {
			accounts = []domain.AccountID{"0xdonor"}
		}
		return usecase.NewFundUseCase(usecase.Deps{
			Ledger:    s.ledger,
			Signer:    wallet.New(accounts...),
			Session:   session.NewAdmin(s.verifier),
			Validator: domain.Validator{MinDonation: domain.NewAmount(1)},
			Logger:    logger,
		})
	}, usecase.Limits{}, logger)
	s.handler = NewHandler(reg, logger, opts).Router()
	return s
}

// open starts a session whose initial load returns records.
func (s *server) open(t *testing.T, records ...domain.CampaignRecord) string {
	t.Helper()
	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return(records, nil).Once()
	rec := s.do(t, "", http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp openSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *server) do(t *testing.T, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set(SessionHeader, token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func record(goal, raised int64) domain.CampaignRecord {
	return domain.CampaignRecord{
		Name:         "Flood relief",
		Location:     "Assam",
		Goal:         domain.NewAmount(goal),
		AmountRaised: domain.NewAmount(raised),
		Description:  "boats and food",
	}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRequireSession(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, "", http.MethodGet, "/api/v1/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_session", decodeBody[errorBody](t, rec).Error)

	rec = s.do(t, "nope", http.MethodGet, "/api/v1/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unknown_session", decodeBody[errorBody](t, rec).Error)
}

func TestOpenSessionLoadFailure(t *testing.T) {
	s := newServer(t)
	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return(nil, domain.ErrNetwork).Once()

	rec := s.do(t, "", http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, string(domain.LedgerNetworkError), decodeBody[errorBody](t, rec).Error)
}

func TestClientAccounts(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, "", http.MethodPost, "/api/v1/sessions", openSessionRequest{Accounts: []string{"0xowner"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "client_accounts_disabled", decodeBody[errorBody](t, rec).Error)

	s = newServerWith(t, Options{Decimals: 2, ClientAccounts: true})
	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return(nil, nil).Once()
	rec = s.do(t, "", http.MethodPost, "/api/v1/sessions", openSessionRequest{Accounts: []string{"0xalice"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := decodeBody[openSessionResponse](t, rec).Token

	rec = s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0xalice", decodeBody[sessionResponse](t, rec).Account)
}

func TestListCampaigns(t *testing.T) {
	s := newServer(t)
	token := s.open(t, record(100, 40), record(50, 50))

	rec := s.do(t, token, http.MethodGet, "/api/v1/campaigns", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ov := decodeBody[overviewView](t, rec)

	require.Len(t, ov.Active, 1)
	require.Len(t, ov.Completed, 1)
	assert.Equal(t, 0, ov.Active[0].ID)
	assert.Equal(t, 1, ov.Completed[0].ID)
	assert.Equal(t, "40", ov.Active[0].AmountRaised)
	assert.Equal(t, "0.4", ov.Active[0].AmountRaisedDisplay)
	assert.Equal(t, "60", ov.Active[0].Remaining)
	assert.Equal(t, "90", ov.TotalRaised)
	assert.Equal(t, "0.01", ov.MinDonation)

	rec = s.do(t, token, http.MethodGet, "/api/v1/campaigns/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(domain.StatusCompleted), decodeBody[campaignView](t, rec).Status)

	rec = s.do(t, token, http.MethodGet, "/api/v1/campaigns/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, token, http.MethodGet, "/api/v1/campaigns/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDonateFlow(t *testing.T) {
	s := newServer(t)
	token := s.open(t, record(100, 80))

	rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns/0/donations", donationRequest{Amount: "0.30"})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code, "not connected yet")

	rec = s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0xdonor", decodeBody[sessionResponse](t, rec).Account)

	s.ledger.EXPECT().
		Submit(mock.Anything, mock.MatchedBy(func(a domain.Approved) bool {
			d, ok := a.Mutation().(domain.Donate)
			return ok && d.Amount.String() == "30" && a.Account() == "0xdonor"
		})).
		Return(domain.Receipt{ID: "tx-1", Kind: domain.KindDonate, Account: "0xdonor", Amount: domain.NewAmount(30)}, nil).Once()
	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return([]domain.CampaignRecord{record(100, 110)}, nil).Once()

	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns/0/donations", donationRequest{Amount: "0.30"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[mutationResponse](t, rec)
	assert.Equal(t, "tx-1", resp.Receipt.ID)
	assert.Equal(t, "30", resp.Receipt.Amount)
	assert.False(t, resp.Stale)
	require.NotNil(t, resp.Campaigns)
	assert.Empty(t, resp.Campaigns.Active)
	require.Len(t, resp.Campaigns.Completed, 1)
	assert.Equal(t, "1.1", resp.Campaigns.Completed[0].AmountRaisedDisplay)

	// The campaign is now closed; the ledger is not consulted again.
	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns/0/donations", donationRequest{Amount: "0.30"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(domain.ReasonCampaignClosed), decodeBody[errorBody](t, rec).Error)
}

func TestDonateRejectsBadAmount(t *testing.T) {
	s := newServer(t)
	token := s.open(t, record(100, 0))
	s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)

	for _, amount := range []string{"0", "", "abc", "0.001", "-1"} {
		rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns/0/donations", donationRequest{Amount: amount})
		assert.Equal(t, http.StatusBadRequest, rec.Code, amount)
		assert.Equal(t, string(domain.ReasonAmountTooSmall), decodeBody[errorBody](t, rec).Error, amount)
	}

	// The campaign check comes first, whatever the amount.
	rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns/x/donations", donationRequest{Amount: "abc"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(domain.ReasonCampaignClosed), decodeBody[errorBody](t, rec).Error)
}

func TestAdminEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.open(t)
	s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)

	body := campaignRequest{Name: "Cyclone", Location: "Odisha", Goal: "10", Description: "shelter"}
	rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.verifier.EXPECT().Verify(mock.Anything, "admin", "wrong").Return(errors.New("mismatch")).Once()
	rec = s.do(t, token, http.MethodPost, "/api/v1/admin/login", loginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.verifier.EXPECT().Verify(mock.Anything, "admin", "pw").Return(nil).Once()
	rec = s.do(t, token, http.MethodPost, "/api/v1/admin/login", loginRequest{Username: "admin", Password: "pw"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, token, http.MethodGet, "/api/v1/session", nil)
	assert.True(t, decodeBody[sessionResponse](t, rec).IsAdmin)

	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns", campaignRequest{Name: "Cyclone", Location: "Odisha", Goal: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "goal", decodeBody[errorBody](t, rec).Field)

	s.ledger.EXPECT().
		Submit(mock.Anything, mock.MatchedBy(func(a domain.Approved) bool {
			c, ok := a.Mutation().(domain.CreateCampaign)
			return ok && c.Name == "Cyclone" && c.Goal.String() == "1000"
		})).
		Return(domain.Receipt{ID: "tx-2", Kind: domain.KindCreateCampaign}, nil).Once()
	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return([]domain.CampaignRecord{{
		Name: "Cyclone", Location: "Odisha", Goal: domain.NewAmount(1000), Description: "shelter",
	}}, nil).Once()

	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[mutationResponse](t, rec)
	require.Len(t, resp.Campaigns.Active, 1)
	assert.Equal(t, "10", resp.Campaigns.Active[0].GoalDisplay)

	rec = s.do(t, token, http.MethodPost, "/api/v1/admin/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, token, http.MethodDelete, "/api/v1/campaigns/0", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// Malformed input is judged by the validator, so authorization and field
// order are the same as for well-formed requests.
func TestMalformedInputFollowsRuleOrder(t *testing.T) {
	s := newServer(t)
	token := s.open(t, record(100, 0))
	s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)

	rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns", campaignRequest{Name: "x", Location: "y", Goal: ""})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, string(domain.ReasonUnauthorized), decodeBody[errorBody](t, rec).Error)

	rec = s.do(t, token, http.MethodPut, "/api/v1/campaigns/0", campaignRequest{Name: "x", Location: "y", Goal: "lots"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, token, http.MethodDelete, "/api/v1/campaigns/-1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns/abc/withdrawals", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.verifier.EXPECT().Verify(mock.Anything, "admin", "pw").Return(nil).Once()
	require.Equal(t, http.StatusNoContent,
		s.do(t, token, http.MethodPost, "/api/v1/admin/login", loginRequest{Username: "admin", Password: "pw"}).Code)

	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns", campaignRequest{Location: "y"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorBody](t, rec)
	assert.Equal(t, string(domain.ReasonInvalidField), body.Error)
	assert.Equal(t, "name", body.Field)

	rec = s.do(t, token, http.MethodPut, "/api/v1/campaigns/0", campaignRequest{Name: "x", Location: "y", Goal: "1.234"})
	assert.Equal(t, "goal", decodeBody[errorBody](t, rec).Field)

	rec = s.do(t, token, http.MethodDelete, "/api/v1/campaigns/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaleAfterConfirmedWrite(t *testing.T) {
	s := newServer(t)
	token := s.open(t, record(100, 0))
	s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)

	s.ledger.EXPECT().Submit(mock.Anything, mock.Anything).
		Return(domain.Receipt{ID: "tx-3", Kind: domain.KindDonate}, nil).Once()
	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return(nil, domain.ErrTimeout).Once()

	rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns/0/donations", donationRequest{Amount: "0.05"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	resp := decodeBody[mutationResponse](t, rec)
	assert.True(t, resp.Stale)
	assert.Equal(t, "tx-3", resp.Receipt.ID)
	assert.Nil(t, resp.Campaigns)

	s.ledger.EXPECT().FetchCampaigns(mock.Anything).Return([]domain.CampaignRecord{record(100, 5)}, nil).Once()
	rec = s.do(t, token, http.MethodPost, "/api/v1/campaigns/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", decodeBody[overviewView](t, rec).TotalRaised)
}

func TestLedgerErrorStatus(t *testing.T) {
	s := newServer(t)
	token := s.open(t, record(100, 0))
	s.do(t, token, http.MethodPost, "/api/v1/wallet/connect", nil)

	s.ledger.EXPECT().Submit(mock.Anything, mock.Anything).Return(domain.Receipt{}, domain.ErrInsufficientFunds).Once()

	rec := s.do(t, token, http.MethodPost, "/api/v1/campaigns/0/donations", donationRequest{Amount: "0.05"})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, string(domain.LedgerInsufficientFunds), decodeBody[errorBody](t, rec).Error)
}

func TestCloseSession(t *testing.T) {
	s := newServer(t)
	token := s.open(t)

	rec := s.do(t, token, http.MethodDelete, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, token, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
		{domain.InvalidField("name"), http.StatusBadRequest, "invalid_field"},
		{domain.ErrNothingToWithdraw, http.StatusConflict, "nothing_to_withdraw"},
		{domain.ErrNotConnected, http.StatusPreconditionFailed, "not_connected"},
		{fmt.Errorf("wrapped: %w", domain.ErrBusy), http.StatusLocked, "busy"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrSessionLimit, http.StatusServiceUnavailable, "session_limit"},
		{domain.ErrNoWallet, http.StatusPreconditionFailed, "no_wallet"},
		{domain.ErrUserRejected, http.StatusUnprocessableEntity, "user_rejected"},
		{domain.ErrTransactionRejected, http.StatusUnprocessableEntity, "transaction_rejected"},
		{domain.ErrTimeout, http.StatusGatewayTimeout, "timeout"},
		{context.Canceled, http.StatusRequestTimeout, "canceled"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			status, body := errorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Error)
		})
	}
}
