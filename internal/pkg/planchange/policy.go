package planchange

import "github.com/shopspring/decimal"

// Policy turns a daily cost difference into the price of a plan change.
// An invalid dayCostDiff means the new plan is not more expensive than the old
// one. An invalid result means no payment is required.
type Policy interface {
	FinalPrice(period int, dayCostDiff decimal.NullDecimal) decimal.NullDecimal
}

// BasePolicy charges the plain daily cost difference over the period and lets
// downgrades through for free.
type BasePolicy struct{}

func (BasePolicy) FinalPrice(period int, dayCostDiff decimal.NullDecimal) decimal.NullDecimal {
	if !dayCostDiff.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromInt(int64(period)).Mul(dayCostDiff.Decimal))
}

// StandardPolicy rules:
//   - downgrades (cheaper or same daily cost) cost DowngradeCharge, free when unset
//   - upgrades pay the difference plus UpgradePercentRate percent and UpgradeCharge
type StandardPolicy struct {
	UpgradePercentRate decimal.Decimal
	UpgradeCharge      decimal.Decimal
	DowngradeCharge    decimal.NullDecimal
}

var (
	DefaultUpgradePercentRate = decimal.RequireFromString("10.0")
	DefaultUpgradeCharge      = decimal.RequireFromString("0.0")
)

// NewStandardPolicy returns a StandardPolicy with a 10% upgrade rate, no flat
// upgrade fee and free downgrades.
func NewStandardPolicy() StandardPolicy {
	return StandardPolicy{
		UpgradePercentRate: DefaultUpgradePercentRate,
		UpgradeCharge:      DefaultUpgradeCharge,
	}
}

func (p StandardPolicy) FinalPrice(period int, dayCostDiff decimal.NullDecimal) decimal.NullDecimal {
	if !dayCostDiff.Valid {
		return p.DowngradeCharge
	}
	multiplier := p.UpgradePercentRate.Div(decimal.NewFromInt(100)).Add(decimal.NewFromInt(1))
	price := decimal.NewFromInt(int64(period)).
		Mul(dayCostDiff.Decimal).
		Mul(multiplier).
		Add(p.UpgradeCharge)
	return decimal.NewNullDecimal(price.Round(2))
}
