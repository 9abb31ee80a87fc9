package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assistant maps a display name to a hosted OpenAI assistant id.
type Assistant struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	OpenAIAssistantID string    `gorm:"type:varchar(100);not null" json:"openai_assistant_id" validate:"required"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Assistant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Assistant) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
