package repository

import (
	"github.com/pageforge/PageForge/app/models"
	"gorm.io/gorm"
)

// assistantRepository implements the AssistantRepository interface
type assistantRepository struct {
	db *gorm.DB
}

// NewAssistantRepository creates a new assistant repository instance
func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

func (r *assistantRepository) Create(assistant *models.Assistant) error {
	return r.db.Create(assistant).Error
}

func (r *assistantRepository) GetByID(id string) (*models.Assistant, error) {
	var assistant models.Assistant
	err := r.db.Where("id = ?", id).First(&assistant).Error
	if err != nil {
		return nil, err
	}
	return &assistant, nil
}

func (r *assistantRepository) Update(assistant *models.Assistant) error {
	return r.db.Save(assistant).Error
}

func (r *assistantRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Assistant{}).Error
}

func (r *assistantRepository) List() ([]models.Assistant, error) {
	var assistants []models.Assistant
	err := r.db.Order("name ASC").Find(&assistants).Error
	return assistants, err
}
