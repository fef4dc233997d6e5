// Package store holds the local projection of ledger campaigns.
package store

import (
	"slices"
	"sync"

	"relief-fund/internal/core/domain"
)

// Campaigns caches exactly what the last successful ledger fetch
// returned. The only way to change it is Replace; no method patches a
// stored campaign. It is safe for concurrent use.
type Campaigns struct {
	mu    sync.RWMutex
	items []domain.Campaign
}

func NewCampaigns() *Campaigns {
	return &Campaigns{}
}

// Replace swaps the whole cache. Record positions become campaign ids.
func (s *Campaigns) Replace(records []domain.CampaignRecord) {
	items := make([]domain.Campaign, len(records))
	for i, r := range records {
		items[i] = domain.Campaign{ID: i, CampaignRecord: r}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// ByID returns the campaign at ledger position id.
func (s *Campaigns) ByID(id int) (domain.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.items) {
		return domain.Campaign{}, false
	}
	return s.items[id], true
}

// All returns a copy of the cache in ledger order.
func (s *Campaigns) All() []domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Campaigns) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Active returns campaigns below their goal, in ledger order.
func (s *Campaigns) Active() []domain.Campaign {
	return s.filter(domain.StatusActive)
}

// Completed returns campaigns that reached their goal, in ledger order.
func (s *Campaigns) Completed() []domain.Campaign {
	return s.filter(domain.StatusCompleted)
}

// TotalRaised sums the raised amount over the cache.
func (s *Campaigns) TotalRaised() domain.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total domain.Amount
	for _, c := range s.items {
		total = total.Add(c.AmountRaised)
	}
	return total
}

// Overview partitions one consistent snapshot of the cache.
func (s *Campaigns) Overview() domain.Overview {
	all := s.All()
	ov := domain.Overview{
		Active:    []domain.Campaign{},
		Completed: []domain.Campaign{},
	}
	for _, c := range all {
		ov.TotalRaised = ov.TotalRaised.Add(c.AmountRaised)
		if c.Status() == domain.StatusCompleted {
			ov.Completed = append(ov.Completed, c)
		} else {
			ov.Active = append(ov.Active, c)
		}
	}
	return ov
}

func (s *Campaigns) filter(status domain.Status) []domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(s.items))
	for _, c := range s.items {
		if c.Status() == status {
			out = append(out, c)
		}
	}
	return out
}
