package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
// ID is a UUID string, matching the id format the original web clients expect.
type Base struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Image is an uploaded image reference embedded in a post.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Alt      string `json:"alt,omitempty"`
}
