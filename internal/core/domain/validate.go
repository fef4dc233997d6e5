package domain

import "strings"

// Validator applies the domain rules to a proposed mutation. It is pure:
// it reads the lookup and session and never calls the ledger. MinDonation
// is the smallest accepted donation in minor units.
type Validator struct {
	MinDonation Amount
}

// Validate returns an Approved mutation or the first failing rule as a
// *ValidationError. Rules run in a fixed order: authorization, field
// checks, donation checks, withdrawal balance, target resolution and
// finally the signer requirement for admin mutations.
func (v Validator) Validate(m Mutation, campaigns CampaignLookup, s Session) (Approved, error) {
	kind := m.Kind()
	if kind.AdminOnly() && !s.IsAdmin {
		return Approved{}, ErrUnauthorized
	}

	switch c := m.(type) {
	case CreateCampaign:
		if err := checkFields(c.Name, c.Location, c.Goal); err != nil {
			return Approved{}, err
		}
	case UpdateCampaign:
		if err := checkFields(c.Name, c.Location, c.Goal); err != nil {
			return Approved{}, err
		}
	}

	if d, ok := m.(Donate); ok {
		if !s.Connected() {
			return Approved{}, ErrNotConnected
		}
		target, found := campaigns.ByID(d.CampaignID)
		if !found || target.Status() != StatusActive {
			return Approved{}, ErrCampaignClosed
		}
		if d.Amount.Sign() <= 0 || d.Amount.Cmp(v.MinDonation) < 0 {
			return Approved{}, ErrAmountTooSmall
		}
	}

	if w, ok := m.(WithdrawFunds); ok {
		target, found := campaigns.ByID(w.CampaignID)
		if !found {
			return Approved{}, ErrNotFound
		}
		if target.AmountRaised.IsZero() {
			return Approved{}, ErrNothingToWithdraw
		}
	}

	switch kind {
	case KindUpdateCampaign, KindDeleteCampaign:
		id, _ := TargetID(m)
		if _, found := campaigns.ByID(id); !found {
			return Approved{}, ErrNotFound
		}
	}

	if kind.AdminOnly() && !s.Connected() {
		return Approved{}, ErrNotConnected
	}
	return Approved{mutation: m, account: s.Account}, nil
}

func checkFields(name, location string, goal Amount) error {
	if strings.TrimSpace(name) == "" {
		return InvalidField("name")
	}
	if strings.TrimSpace(location) == "" {
		return InvalidField("location")
	}
	if goal.Sign() <= 0 {
		return InvalidField("goal")
	}
	return nil
}
