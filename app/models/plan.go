package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Plan is a subscription tier a user can be on. Its prices live in PlanPricings.
type Plan struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	Description  string        `gorm:"type:text" json:"description"`
	Available    bool          `gorm:"default:true;index" json:"available"`
	PlanPricings []PlanPricing `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"plan_pricings,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// Pricing is a billing period length in days, e.g. 30 for a monthly tier.
type Pricing struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	Period    int       `gorm:"not null;uniqueIndex" json:"period" validate:"required,gt=0"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PlanPricing is the price a plan charges for one pricing period.
type PlanPricing struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	PlanID    uint            `gorm:"not null;index:ux_plan_pricings_plan_pricing,unique,priority:1" json:"plan_id" validate:"required"`
	PricingID uint            `gorm:"not null;index:ux_plan_pricings_plan_pricing,unique,priority:2" json:"pricing_id" validate:"required"`
	Pricing   Pricing         `gorm:"foreignKey:PricingID;constraint:OnDelete:CASCADE" json:"pricing" validate:"-"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Plan) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

func (p *Pricing) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

func (pp *PlanPricing) Validate() error {
	v := validator.New()
	if err := v.Struct(pp); err != nil {
		return err
	}
	if pp.Price.IsNegative() {
		return errors.New("plan pricing price must not be negative")
	}
	return nil
}

func GetAllPlans(db *gorm.DB) ([]Plan, error) {
	var plans []Plan
	err := db.Order("id ASC").Find(&plans).Error
	return plans, err
}
