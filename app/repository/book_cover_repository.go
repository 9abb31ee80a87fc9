package repository

import (
	"github.com/pageforge/PageForge/app/models"
	"gorm.io/gorm"
)

// bookCoverRepository implements the BookCoverRepository interface
type bookCoverRepository struct {
	db *gorm.DB
}

// NewBookCoverRepository creates a new cover repository instance
func NewBookCoverRepository(db *gorm.DB) BookCoverRepository {
	return &bookCoverRepository{db: db}
}

func (r *bookCoverRepository) Create(cover *models.BookCover) error {
	return r.db.Create(cover).Error
}

func (r *bookCoverRepository) GetByID(id, userID string) (*models.BookCover, error) {
	var cover models.BookCover
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&cover).Error
	if err != nil {
		return nil, err
	}
	return &cover, nil
}

func (r *bookCoverRepository) GetByUserID(userID string, offset, limit int) ([]models.BookCover, error) {
	var covers []models.BookCover
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&covers).Error
	return covers, err
}

func (r *bookCoverRepository) Delete(id, userID string) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.BookCover{}).Error
}

func (r *bookCoverRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.BookCover{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
