package repository

import (
	"github.com/pageforge/PageForge/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	GetByStripeCustomerID(customerID string) (*models.User, error)
	GetRole(id string) (string, error)
	Update(user *models.User) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// BookRepository defines the interface for book-related database operations.
// All reads and writes are scoped by user id; ownership is enforced here.
type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id, userID string) (*models.Book, error)
	GetByUserID(userID string, offset, limit int) ([]models.Book, error)
	Update(book *models.Book) error
	Delete(id, userID string) error
	CountByUserID(userID string) (int64, error)
}

// BookCoverRepository defines the interface for cover database operations
type BookCoverRepository interface {
	Create(cover *models.BookCover) error
	GetByID(id, userID string) (*models.BookCover, error)
	GetByUserID(userID string, offset, limit int) ([]models.BookCover, error)
	Delete(id, userID string) error
	CountByUserID(userID string) (int64, error)
}

// APIKeyRepository manages hosted-service credentials
type APIKeyRepository interface {
	GetByService(service string) (*models.APIKey, error)
	Upsert(key *models.APIKey) error
	Delete(service string) error
	List() ([]models.APIKey, error)
}

// AssistantRepository manages the assistant catalog
type AssistantRepository interface {
	Create(assistant *models.Assistant) error
	GetByID(id string) (*models.Assistant, error)
	Update(assistant *models.Assistant) error
	Delete(id string) error
	List() ([]models.Assistant, error)
}

// SubscriptionPlanRepository manages the plan catalog
type SubscriptionPlanRepository interface {
	Create(plan *models.SubscriptionPlan) error
	GetByID(id string) (*models.SubscriptionPlan, error)
	GetByStripePriceID(priceID string) (*models.SubscriptionPlan, error)
	Update(plan *models.SubscriptionPlan) error
	Delete(id string) error
	List() ([]models.SubscriptionPlan, error)
	ListActive() ([]models.SubscriptionPlan, error)
}
