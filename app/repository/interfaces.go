package repository

import (
	"context"

	"github.com/ManuelReschke/PlanChange/app/models"
	"github.com/ManuelReschke/PlanChange/internal/pkg/planchange"
	"gorm.io/gorm"
)

// PlanRepository defines read access to plans and their pricing tiers.
// It satisfies planchange.TierSource.
type PlanRepository interface {
	List(ctx context.Context) ([]models.Plan, error)
	TiersForPlan(ctx context.Context, planID uint) ([]planchange.Tier, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Plan PlanRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Plan: NewPlanRepository(db),
	}
}
