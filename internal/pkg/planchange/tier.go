package planchange

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoPricingAvailable is returned when a plan has no pricing tiers at all.
	ErrNoPricingAvailable = errors.New("plan has no pricings")
	// ErrInvalidPricing is returned when the selected tier cannot yield a daily cost.
	ErrInvalidPricing = errors.New("plan pricing period must be positive")
)

// Tier is one price a plan charges for a pricing period of Period days.
type Tier struct {
	Period int             `json:"period"`
	Price  decimal.Decimal `json:"price"`
}

// TierSource returns the pricing tiers of a plan ordered by descending period.
type TierSource interface {
	TiersForPlan(ctx context.Context, planID uint) ([]Tier, error)
}

// MemoryTierSource is a TierSource backed by a map, used for fixtures and tests.
type MemoryTierSource struct {
	mu    sync.RWMutex
	tiers map[uint][]Tier
}

func NewMemoryTierSource() *MemoryTierSource {
	return &MemoryTierSource{tiers: make(map[uint][]Tier)}
}

// Set replaces the tiers of a plan.
func (s *MemoryTierSource) Set(planID uint, tiers ...Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[planID] = sortedTiers(tiers)
}

func (s *MemoryTierSource) TiersForPlan(ctx context.Context, planID uint) ([]Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tiers := s.tiers[planID]
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out, nil
}

// sortedTiers returns a copy of tiers ordered by descending period.
func sortedTiers(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Period > out[j].Period
	})
	return out
}
