package domain

// MutationKind names a state-changing ledger operation.
type MutationKind string

const (
	KindCreateCampaign MutationKind = "create_campaign"
	KindUpdateCampaign MutationKind = "update_campaign"
	KindDeleteCampaign MutationKind = "delete_campaign"
	KindDonate         MutationKind = "donate"
	KindWithdrawFunds  MutationKind = "withdraw_funds"
)

// AdminOnly reports whether the kind requires an admin session.
func (k MutationKind) AdminOnly() bool {
	switch k {
	case KindCreateCampaign, KindUpdateCampaign, KindDeleteCampaign, KindWithdrawFunds:
		return true
	default:
		return false
	}
}

// Mutation is a proposed state change prior to validation.
type Mutation interface {
	Kind() MutationKind
}

// CreateCampaign appends a new campaign to the ledger.
type CreateCampaign struct {
	Name        string
	Location    string
	Goal        Amount
	Description string
}

// UpdateCampaign replaces a campaign's metadata. It never touches the
// raised amount.
type UpdateCampaign struct {
	ID          int
	Name        string
	Location    string
	Goal        Amount
	Description string
}

type DeleteCampaign struct {
	ID int
}

// Donate adds Amount to the campaign's raised total at the ledger. The
// amount is relative; the client never computes the new total.
type Donate struct {
	CampaignID int
	Amount     Amount
}

// WithdrawFunds moves the raised amount of a campaign to the owner.
type WithdrawFunds struct {
	CampaignID int
}

func (CreateCampaign) Kind() MutationKind { return KindCreateCampaign }
func (UpdateCampaign) Kind() MutationKind { return KindUpdateCampaign }
func (DeleteCampaign) Kind() MutationKind { return KindDeleteCampaign }
func (Donate) Kind() MutationKind         { return KindDonate }
func (WithdrawFunds) Kind() MutationKind  { return KindWithdrawFunds }

// TargetID returns the campaign position a mutation addresses, or false
// for CreateCampaign.
func TargetID(m Mutation) (int, bool) {
	switch v := m.(type) {
	case UpdateCampaign:
		return v.ID, true
	case DeleteCampaign:
		return v.ID, true
	case Donate:
		return v.CampaignID, true
	case WithdrawFunds:
		return v.CampaignID, true
	default:
		return 0, false
	}
}

// Approved is a mutation that passed validation. Only Validator.Validate
// constructs one, so the ledger never receives an unchecked mutation.
type Approved struct {
	mutation Mutation
	account  AccountID
}

func (a Approved) Mutation() Mutation { return a.mutation }

// Account is the signer the mutation was approved for.
func (a Approved) Account() AccountID { return a.account }

func (a Approved) Kind() MutationKind {
	if a.mutation == nil {
		return ""
	}
	return a.mutation.Kind()
}
