package billing

import (
	"github.com/pageforge/PageForge/app/models"
	"gorm.io/gorm"
)

// Repository provides the DB operations used by the reconciler: a point
// lookup by remote customer id, a partial update by user id, and the plan
// catalog lookup by remote price id.
type Repository interface {
	GetUserByStripeCustomerID(customerID string) (*models.User, error)
	UpdateUserFields(id string, fields map[string]interface{}) error
	GetPlanIntervalByPriceID(priceID string) (string, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetUserByStripeCustomerID(customerID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("stripe_customer_id = ?", customerID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UpdateUserFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *gormRepository) GetPlanIntervalByPriceID(priceID string) (string, error) {
	var plan models.SubscriptionPlan
	err := r.db.Where("stripe_price_id = ?", priceID).First(&plan).Error
	if err != nil {
		return "", err
	}
	return plan.Interval, nil
}
