package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

func changeDirection(oldCost, newCost decimal.Decimal) Direction {
	switch newCost.Cmp(oldCost) {
	case 1:
		return DirectionUpgrade
	case -1:
		return DirectionDowngrade
	default:
		return DirectionLateral
	}
}

// RemainingDays counts the started days between now and periodEnd. Ended
// periods yield 0, which is never charged.
func RemainingDays(now, periodEnd time.Time) int {
	if !periodEnd.After(now) {
		return 0
	}
	left := periodEnd.Sub(now)
	days := int(left / day)
	if left%day != 0 {
		days++
	}
	return days
}
