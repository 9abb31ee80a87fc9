package repository

import (
	"github.com/pageforge/PageForge/app/models"
	"gorm.io/gorm"
)

// bookRepository implements the BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository instance
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// GetByID retrieves a book only if it belongs to the given user
func (r *bookRepository) GetByID(id, userID string) (*models.Book, error) {
	var book models.Book
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByUserID(userID string, offset, limit int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&books).Error
	return books, err
}

func (r *bookRepository) Update(book *models.Book) error {
	return r.db.Model(&models.Book{}).
		Where("id = ? AND user_id = ?", book.ID, book.UserID).
		Updates(map[string]interface{}{"title": book.Title, "content": book.Content}).Error
}

func (r *bookRepository) Delete(id, userID string) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Book{}).Error
}

func (r *bookRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Book{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
