package repository

import (
	"github.com/pageforge/PageForge/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// apiKeyRepository implements the APIKeyRepository interface
type apiKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository creates a new API key repository instance
func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) GetByService(service string) (*models.APIKey, error) {
	var key models.APIKey
	err := r.db.Where("service = ?", service).First(&key).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// Upsert creates or replaces the single key for a service
func (r *apiKeyRepository) Upsert(key *models.APIKey) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "service"}},
		DoUpdates: clause.AssignmentColumns([]string{"api_key", "updated_at"}),
	}).Create(key).Error
}

func (r *apiKeyRepository) Delete(service string) error {
	return r.db.Where("service = ?", service).Delete(&models.APIKey{}).Error
}

func (r *apiKeyRepository) List() ([]models.APIKey, error) {
	var keys []models.APIKey
	err := r.db.Order("service ASC").Find(&keys).Error
	return keys, err
}
