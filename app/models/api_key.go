package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hosted services an API key can belong to.
const (
	ServiceOpenAI   = "openai"
	ServiceIdeogram = "ideogram"
	ServiceStripe   = "stripe"
)

// APIKey holds the credential for one hosted service, managed by admins.
// One row per service.
type APIKey struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Service   string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"service"`
	APIKey    string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}

// IsValidService reports whether s names a known hosted service.
func IsValidService(s string) bool {
	switch s {
	case ServiceOpenAI, ServiceIdeogram, ServiceStripe:
		return true
	default:
		return false
	}
}
