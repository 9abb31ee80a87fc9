package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookCover is a generated cover image stored in object storage.
type BookCover struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ImageURL     string    `gorm:"type:text;not null" json:"image_url"`
	ObjectKey    string    `gorm:"type:varchar(255)" json:"object_key"`
	ThumbnailKey string    `gorm:"type:varchar(255)" json:"thumbnail_key"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt"`
	Style        string    `gorm:"type:varchar(50);default:'natural'" json:"style"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (bc *BookCover) BeforeCreate(tx *gorm.DB) error {
	if bc.ID == "" {
		bc.ID = uuid.NewString()
	}
	return nil
}
