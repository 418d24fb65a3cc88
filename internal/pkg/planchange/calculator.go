package planchange

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Calculator prices plan changes for the remaining days of a billing period.
// It never writes plan data; tiers come from the injected TierSource.
type Calculator struct {
	source TierSource
	policy Policy
}

// NewCalculator creates a calculator. A nil policy falls back to BasePolicy.
func NewCalculator(source TierSource, policy Policy) *Calculator {
	if policy == nil {
		policy = BasePolicy{}
	}
	return &Calculator{source: source, policy: policy}
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

// SelectTier picks the best fitting tier for period: the longest tier not
// exceeding it, or the shortest tier when every tier is longer than period.
func SelectTier(tiers []Tier, period int) (Tier, bool) {
	var selected Tier
	found := false
	for _, tier := range sortedTiers(tiers) {
		selected = tier
		found = true
		if tier.Period <= period {
			break
		}
	}
	return selected, found
}

// DayCost is the tier price per day, rounded to cents half away from zero.
func DayCost(tier Tier) (decimal.Decimal, error) {
	if tier.Period <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidPricing, tier.Period)
	}
	return tier.Price.Div(decimal.NewFromInt(int64(tier.Period))).Round(2), nil
}

// DailyCost finds the most fitting pricing of a plan for period and returns
// its daily cost.
func (c *Calculator) DailyCost(ctx context.Context, planID uint, period int) (decimal.Decimal, error) {
	tiers, err := c.source.TiersForPlan(ctx, planID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load pricings of plan %d: %w", planID, err)
	}

	tier, ok := SelectTier(tiers, period)
	if !ok {
		return decimal.Zero, fmt.Errorf("plan %d: %w", planID, ErrNoPricingAvailable)
	}

	cost, err := DayCost(tier)
	if err != nil {
		return decimal.Zero, fmt.Errorf("plan %d: %w", planID, err)
	}
	return cost, nil
}

// ChangePrice returns the total price of switching from oldPlanID to newPlanID
// for period days. An invalid result means no payment is required.
func (c *Calculator) ChangePrice(ctx context.Context, oldPlanID, newPlanID uint, period int) (decimal.NullDecimal, error) {
	if period < 1 {
		return decimal.NullDecimal{}, nil
	}

	oldCost, err := c.DailyCost(ctx, oldPlanID, period)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	newCost, err := c.DailyCost(ctx, newPlanID, period)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	return c.PriceDifference(period, oldCost, newCost), nil
}

// PriceDifference applies the policy to two already computed daily costs.
func (c *Calculator) PriceDifference(period int, oldCost, newCost decimal.Decimal) decimal.NullDecimal {
	if newCost.LessThanOrEqual(oldCost) {
		return c.policy.FinalPrice(period, decimal.NullDecimal{})
	}
	return c.policy.FinalPrice(period, decimal.NewNullDecimal(newCost.Sub(oldCost)))
}
