package repository

import (
	"context"

	"github.com/ManuelReschke/PlanChange/app/models"
	"github.com/ManuelReschke/PlanChange/internal/pkg/planchange"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// List retrieves all plans ordered by ID
func (r *planRepository) List(ctx context.Context) ([]models.Plan, error) {
	return models.GetAllPlans(r.db.WithContext(ctx))
}

type tierRow struct {
	Period int
	Price  decimal.Decimal
}

// TiersForPlan loads the plan's prices joined with their pricing periods,
// longest period first.
func (r *planRepository) TiersForPlan(ctx context.Context, planID uint) ([]planchange.Tier, error) {
	var rows []tierRow
	err := r.db.WithContext(ctx).
		Table("plan_pricings").
		Select("pricings.period AS period, plan_pricings.price AS price").
		Joins("JOIN pricings ON pricings.id = plan_pricings.pricing_id").
		Where("plan_pricings.plan_id = ?", planID).
		Order("pricings.period DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tiers := make([]planchange.Tier, 0, len(rows))
	for _, row := range rows {
		tiers = append(tiers, planchange.Tier{Period: row.Period, Price: row.Price})
	}
	return tiers, nil
}
