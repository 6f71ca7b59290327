package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a (category, platform) catalog entry, e.g. ("Streaming",
// "Netflix"). CategoryID is the stable public identifier; ID is the storage
// key. Duplicates are allowed through Add and only the seeder dedupes.
type Category struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID string    `gorm:"column:category_id;type:text;not null;uniqueIndex"`
	Category   string    `gorm:"type:text;not null"`
	Platform   string    `gorm:"type:text;not null"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	CreatedBy  uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy  uuid.UUID `gorm:"column:updated_by;type:uuid;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
