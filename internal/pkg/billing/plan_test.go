package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestChangeDirection(t *testing.T) {
	tests := []struct {
		oldCost string
		newCost string
		want    Direction
	}{
		{oldCost: "0.67", newCost: "1.00", want: DirectionUpgrade},
		{oldCost: "0.67", newCost: "0.33", want: DirectionDowngrade},
		{oldCost: "0.67", newCost: "0.670", want: DirectionLateral},
	}

	for _, tt := range tests {
		got := changeDirection(decimal.RequireFromString(tt.oldCost), decimal.RequireFromString(tt.newCost))
		if got != tt.want {
			t.Fatalf("changeDirection(%s, %s) = %q, want %q", tt.oldCost, tt.newCost, got, tt.want)
		}
	}
}

func TestRemainingDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "already expired", end: now.Add(-time.Hour), want: 0},
		{name: "ends now", end: now, want: 0},
		{name: "one hour left", end: now.Add(time.Hour), want: 1},
		{name: "exactly ten days", end: now.AddDate(0, 0, 10), want: 10},
		{name: "ten days and a minute", end: now.AddDate(0, 0, 10).Add(time.Minute), want: 11},
	}

	for _, tt := range tests {
		if got := RemainingDays(now, tt.end); got != tt.want {
			t.Fatalf("%s: RemainingDays = %d, want %d", tt.name, got, tt.want)
		}
	}
}
