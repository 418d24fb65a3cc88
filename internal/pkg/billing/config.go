package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/ManuelReschke/PlanChange/internal/pkg/env"
	"github.com/ManuelReschke/PlanChange/internal/pkg/planchange"
	"github.com/shopspring/decimal"
)

const defaultCacheTTL = 5 * time.Minute

// Config holds the plan change settings read from the environment.
type Config struct {
	Policy   planchange.Policy
	CacheTTL time.Duration
}

// ConfigFromEnv reads PLAN_CHANGE_* variables.
func ConfigFromEnv() (Config, error) {
	policy, err := PolicyFromEnv()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Policy:   policy,
		CacheTTL: env.GetEnvDuration("PLAN_CHANGE_CACHE_TTL", defaultCacheTTL),
	}, nil
}

// PolicyFromEnv builds the plan change policy. PLAN_CHANGE_POLICY selects
// "standard" (default) or "base"; the standard policy charges are overridable.
func PolicyFromEnv() (planchange.Policy, error) {
	switch name := strings.ToLower(strings.TrimSpace(env.GetEnv("PLAN_CHANGE_POLICY", "standard"))); name {
	case "base":
		return planchange.BasePolicy{}, nil
	case "standard", "":
		policy := planchange.NewStandardPolicy()

		rate, err := envDecimal("PLAN_CHANGE_UPGRADE_RATE")
		if err != nil {
			return nil, err
		}
		if rate.Valid {
			policy.UpgradePercentRate = rate.Decimal
		}

		charge, err := envDecimal("PLAN_CHANGE_UPGRADE_CHARGE")
		if err != nil {
			return nil, err
		}
		if charge.Valid {
			policy.UpgradeCharge = charge.Decimal
		}

		downgrade, err := envDecimal("PLAN_CHANGE_DOWNGRADE_CHARGE")
		if err != nil {
			return nil, err
		}
		policy.DowngradeCharge = downgrade
		return policy, nil
	default:
		return nil, fmt.Errorf("unknown PLAN_CHANGE_POLICY %q", name)
	}
}

func envDecimal(key string) (decimal.NullDecimal, error) {
	raw := strings.TrimSpace(env.GetEnv(key, ""))
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return decimal.NewNullDecimal(d), nil
}
