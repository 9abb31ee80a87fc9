package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository instances
type Repositories struct {
	User      UserRepository
	Book      BookRepository
	BookCover BookCoverRepository
	APIKey    APIKeyRepository
	Assistant AssistantRepository
	Plan      SubscriptionPlanRepository
}

// NewRepositories creates all repository instances on a shared DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Book:      NewBookRepository(db),
		BookCover: NewBookCoverRepository(db),
		APIKey:    NewAPIKeyRepository(db),
		Assistant: NewAssistantRepository(db),
		Plan:      NewSubscriptionPlanRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetBookRepository returns the book repository instance
func (f *Factory) GetBookRepository() BookRepository {
	return f.GetRepositories().Book
}

// GetBookCoverRepository returns the cover repository instance
func (f *Factory) GetBookCoverRepository() BookCoverRepository {
	return f.GetRepositories().BookCover
}

// GetAPIKeyRepository returns the API key repository instance
func (f *Factory) GetAPIKeyRepository() APIKeyRepository {
	return f.GetRepositories().APIKey
}

// GetAssistantRepository returns the assistant repository instance
func (f *Factory) GetAssistantRepository() AssistantRepository {
	return f.GetRepositories().Assistant
}

// GetSubscriptionPlanRepository returns the plan repository instance
func (f *Factory) GetSubscriptionPlanRepository() SubscriptionPlanRepository {
	return f.GetRepositories().Plan
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
