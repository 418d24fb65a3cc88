package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/ManuelReschke/PlanChange/app/repository"
	"github.com/ManuelReschke/PlanChange/internal/pkg/planchange"
	"github.com/go-playground/validator/v10"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanChangeService quotes plan changes and audits plan pricing data.
type PlanChangeService struct {
	plans    repository.PlanRepository
	calc     *planchange.Calculator
	cache    *planchange.CachedTierSource
	validate *validator.Validate
}

// NewPlanChangeService creates a service from an injected repository. source
// feeds the calculator and may be the repository itself or a cache over it.
func NewPlanChangeService(plans repository.PlanRepository, source planchange.TierSource, policy planchange.Policy) *PlanChangeService {
	s := &PlanChangeService{
		plans:    plans,
		calc:     planchange.NewCalculator(source, policy),
		validate: validator.New(),
	}
	if cached, ok := source.(*planchange.CachedTierSource); ok {
		s.cache = cached
	}
	return s
}

// NewPlanChangeServiceFromDB wires the GORM repository, an optional Redis
// tier cache and the configured policy.
func NewPlanChangeServiceFromDB(db *gorm.DB, rdb *redis.Client, cfg Config) *PlanChangeService {
	plans := repository.NewFactory(db).GetPlanRepository()

	var source planchange.TierSource = plans
	if rdb != nil && cfg.CacheTTL > 0 {
		source = planchange.NewCachedTierSource(plans, rdb, cfg.CacheTTL)
	}
	return NewPlanChangeService(plans, source, cfg.Policy)
}

// Quote prices switching from in.OldPlanID to in.NewPlanID for in.Period days.
func (s *PlanChangeService) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	q := &Quote{
		OldPlanID:    in.OldPlanID,
		NewPlanID:    in.NewPlanID,
		Period:       in.Period,
		OldDailyCost: decimal.Zero,
		NewDailyCost: decimal.Zero,
		Direction:    DirectionUnknown,
	}
	if in.Period < 1 {
		return q, nil
	}

	oldCost, err := s.calc.DailyCost(ctx, in.OldPlanID, in.Period)
	if err != nil {
		return nil, err
	}
	newCost, err := s.calc.DailyCost(ctx, in.NewPlanID, in.Period)
	if err != nil {
		return nil, err
	}

	q.OldDailyCost = oldCost
	q.NewDailyCost = newCost
	q.Direction = changeDirection(oldCost, newCost)
	q.Amount = s.calc.PriceDifference(in.Period, oldCost, newCost)

	if q.Amount.Valid {
		fiberlog.Infof("[PlanChange] %s plan %d -> %d for %d days costs %s", q.Direction, q.OldPlanID, q.NewPlanID, q.Period, q.Amount.Decimal.StringFixed(2))
	} else {
		fiberlog.Debugf("[PlanChange] %s plan %d -> %d for %d days is free", q.Direction, q.OldPlanID, q.NewPlanID, q.Period)
	}
	return q, nil
}

// QuoteUntil quotes a plan change for the days left until periodEnd.
func (s *PlanChangeService) QuoteUntil(ctx context.Context, oldPlanID, newPlanID uint, now, periodEnd time.Time) (*Quote, error) {
	return s.Quote(ctx, QuoteInput{
		OldPlanID: oldPlanID,
		NewPlanID: newPlanID,
		Period:    RemainingDays(now, periodEnd),
	})
}

// AuditPlans reports, per plan, whether its pricing can be used by the
// calculator. Tiers are read from the repository, bypassing any cache.
func (s *PlanChangeService) AuditPlans(ctx context.Context) ([]PlanAudit, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}

	audits := make([]PlanAudit, 0, len(plans))
	for _, plan := range plans {
		audit := PlanAudit{PlanID: plan.ID, Name: plan.Name}

		tiers, err := s.plans.TiersForPlan(ctx, plan.ID)
		if err != nil {
			audit.Err = err
			audits = append(audits, audit)
			continue
		}
		audit.TierCount = len(tiers)
		audit.Err = checkTiers(plan.ID, tiers)
		if audit.Err != nil {
			fiberlog.Warnf("[PlanChange] Plan %d (%s) cannot be priced: %v", plan.ID, plan.Name, audit.Err)
		}
		audits = append(audits, audit)
	}
	return audits, nil
}

// FlushTierCache drops the cached tiers of the given plans so the next quote
// reads them from the database. Without a cache it does nothing.
func (s *PlanChangeService) FlushTierCache(ctx context.Context, planIDs ...uint) error {
	if s.cache == nil {
		return nil
	}
	for _, id := range planIDs {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			return fmt.Errorf("flush cached tiers of plan %d: %w", id, err)
		}
	}
	return nil
}

func checkTiers(planID uint, tiers []planchange.Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("plan %d: %w", planID, planchange.ErrNoPricingAvailable)
	}
	for _, tier := range tiers {
		if _, err := planchange.DayCost(tier); err != nil {
			return fmt.Errorf("plan %d: %w", planID, err)
		}
	}
	return nil
}
