package domain

// Status is derived from a campaign's amounts and never stored.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// CampaignRecord is a campaign as the ledger reports it.
// Amounts are in minor units.
type CampaignRecord struct {
	Name         string
	Location     string
	Goal         Amount
	AmountRaised Amount
	Description  string
}

// Campaign is a CampaignRecord bound to its ledger position. ID is the
// index of the record in the sequence returned by the ledger.
type Campaign struct {
	ID int
	CampaignRecord
}

// Status reports Completed once the raised amount reaches the goal.
func (c Campaign) Status() Status {
	if c.AmountRaised.Cmp(c.Goal) >= 0 {
		return StatusCompleted
	}
	return StatusActive
}

// Remaining is the amount still needed to reach the goal, never negative.
func (c Campaign) Remaining() Amount {
	return c.Goal.Sub(c.AmountRaised)
}

// CampaignLookup resolves campaigns by ledger position.
type CampaignLookup interface {
	ByID(id int) (Campaign, bool)
}

// Overview partitions cached campaigns for reporting.
type Overview struct {
	Active      []Campaign
	Completed   []Campaign
	TotalRaised Amount
}
