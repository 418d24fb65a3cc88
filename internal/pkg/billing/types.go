package billing

import "github.com/shopspring/decimal"

// Direction classifies a plan change by comparing daily costs.
type Direction string

const (
	DirectionUpgrade   Direction = "upgrade"
	DirectionDowngrade Direction = "downgrade"
	DirectionLateral   Direction = "lateral"
	// DirectionUnknown is used when no daily costs were computed (empty period).
	DirectionUnknown Direction = "unknown"
)

// QuoteInput is the validated request for a plan change quote.
type QuoteInput struct {
	OldPlanID uint `validate:"required"`
	NewPlanID uint `validate:"required"`
	Period    int
}

// Quote is the priced outcome of a plan change. Amount is invalid when the
// change requires no payment.
type Quote struct {
	OldPlanID    uint
	NewPlanID    uint
	Period       int
	OldDailyCost decimal.Decimal
	NewDailyCost decimal.Decimal
	Direction    Direction
	Amount       decimal.NullDecimal
}

// Chargeable reports whether the subscriber has to pay for the change.
func (q *Quote) Chargeable() bool {
	return q.Amount.Valid && q.Amount.Decimal.IsPositive()
}

// PlanAudit is the pricing health of one plan. Err is set when the calculator
// could not price the plan.
type PlanAudit struct {
	PlanID    uint
	Name      string
	TierCount int
	Err       error
}
