package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"relief-fund/internal/core/domain"
)

type campaignView struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Location            string `json:"location"`
	Description         string `json:"description"`
	Goal                string `json:"goal"`
	GoalDisplay         string `json:"goal_display"`
	AmountRaised        string `json:"amount_raised"`
	AmountRaisedDisplay string `json:"amount_raised_display"`
	Remaining           string `json:"remaining"`
	Status              string `json:"status"`
}

type overviewView struct {
	Active             []campaignView `json:"active"`
	Completed          []campaignView `json:"completed"`
	TotalRaised        string         `json:"total_raised"`
	TotalRaisedDisplay string         `json:"total_raised_display"`
	MinDonation        string         `json:"min_donation"`
}

type receiptView struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Account    string    `json:"account"`
	CampaignID *int      `json:"campaign_id,omitempty"`
	Amount     string    `json:"amount"`
	At         time.Time `json:"at"`
}

type mutationResponse struct {
	Receipt   receiptView   `json:"receipt"`
	Campaigns *overviewView `json:"campaigns,omitempty"`
	// Stale is set when the write was confirmed but the cache could not be
	// refreshed; the client should reload.
	Stale bool `json:"stale,omitempty"`
}

// campaignRequest is the body of create and update. Goal is in whole units.
type campaignRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Goal        string `json:"goal"`
	Description string `json:"description"`
}

// donationRequest carries the amount in whole units, e.g. "0.05".
type donationRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	uc := sessionFrom(r.Context())
	writeJSON(w, http.StatusOK, h.overview(uc.Campaigns(), uc.MinDonation()))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, found := sessionFrom(r.Context()).Campaign(campaignID(r))
	if !found {
		h.writeError(w, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.campaign(c))
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	uc := sessionFrom(r.Context())
	if err := uc.Reload(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.overview(uc.Campaigns(), uc.MinDonation()))
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[campaignRequest](w, r)
	if !ok {
		return
	}
	h.execute(w, r, domain.CreateCampaign{
		Name:        req.Name,
		Location:    req.Location,
		Goal:        h.parseAmount(req.Goal),
		Description: req.Description,
	}, http.StatusCreated)
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[campaignRequest](w, r)
	if !ok {
		return
	}
	h.execute(w, r, domain.UpdateCampaign{
		ID:          campaignID(r),
		Name:        req.Name,
		Location:    req.Location,
		Goal:        h.parseAmount(req.Goal),
		Description: req.Description,
	}, http.StatusOK)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, domain.DeleteCampaign{ID: campaignID(r)}, http.StatusOK)
}

func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[donationRequest](w, r)
	if !ok {
		return
	}
	h.execute(w, r, domain.Donate{CampaignID: campaignID(r), Amount: h.parseAmount(req.Amount)}, http.StatusCreated)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, domain.WithdrawFunds{CampaignID: campaignID(r)}, http.StatusCreated)
}

// execute runs m through the session's controller and writes the
// receipt with the reconciled campaign list.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request, m domain.Mutation, status int) {
	uc := sessionFrom(r.Context())
	receipt, err := uc.Execute(r.Context(), m)

	var rerr *domain.ReconcileError
	if errors.As(err, &rerr) {
		h.logger.Warn("mutation confirmed with stale cache", "receipt", receipt.ID, "error", err)
		writeJSON(w, http.StatusAccepted, mutationResponse{Receipt: h.receipt(receipt), Stale: true})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	ov := h.overview(uc.Campaigns(), uc.MinDonation())
	writeJSON(w, status, mutationResponse{Receipt: h.receipt(receipt), Campaigns: &ov})
}

func decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_json", Message: "invalid JSON"})
		return v, false
	}
	return v, true
}

// parseAmount converts whole units to minor units. Anything unparsable
// becomes zero so the validator rejects it in rule order (InvalidField for
// a goal, AmountTooSmall for a donation).
func (h *Handler) parseAmount(s string) domain.Amount {
	a, err := domain.ParseMajor(s, h.decimals)
	if err != nil {
		return domain.Amount{}
	}
	return a
}

// campaignID reads the {id} path parameter. Anything that is not a
// non-negative integer maps to -1, which never resolves in the store.
func campaignID(r *http.Request) int {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		return -1
	}
	return id
}

func (h *Handler) campaign(c domain.Campaign) campaignView {
	return campaignView{
		ID:                  c.ID,
		Name:                c.Name,
		Location:            c.Location,
		Description:         c.Description,
		Goal:                c.Goal.String(),
		GoalDisplay:         c.Goal.Major(h.decimals),
		AmountRaised:        c.AmountRaised.String(),
		AmountRaisedDisplay: c.AmountRaised.Major(h.decimals),
		Remaining:           c.Remaining().String(),
		Status:              string(c.Status()),
	}
}

func (h *Handler) overview(ov domain.Overview, minDonation domain.Amount) overviewView {
	out := overviewView{
		Active:             make([]campaignView, 0, len(ov.Active)),
		Completed:          make([]campaignView, 0, len(ov.Completed)),
		TotalRaised:        ov.TotalRaised.String(),
		TotalRaisedDisplay: ov.TotalRaised.Major(h.decimals),
		MinDonation:        minDonation.Major(h.decimals),
	}
	for _, c := range ov.Active {
		out.Active = append(out.Active, h.campaign(c))
	}
	for _, c := range ov.Completed {
		out.Completed = append(out.Completed, h.campaign(c))
	}
	return out
}

func (h *Handler) receipt(r domain.Receipt) receiptView {
	return receiptView{
		ID:         r.ID,
		Kind:       string(r.Kind),
		Account:    string(r.Account),
		CampaignID: r.CampaignID,
		Amount:     r.Amount.String(),
		At:         r.At,
	}
}
