package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionPlan is the local plan catalog entry tied to a Stripe price.
// The reconciler resolves incoming price ids against this table.
type SubscriptionPlan struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(150);not null" json:"name" validate:"required"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         int64     `gorm:"not null" json:"price" validate:"gte=0"` // cents
	Interval      string    `gorm:"type:varchar(16);not null" json:"interval" validate:"oneof=month year"`
	Features      string    `gorm:"type:text" json:"features"` // newline separated
	Active        bool      `gorm:"default:true;index" json:"active"`
	StripePriceID string    `gorm:"type:varchar(191);not null;index" json:"stripe_price_id" validate:"required"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *SubscriptionPlan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
