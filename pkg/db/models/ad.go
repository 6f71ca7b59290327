package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subslot/subslot-backend/pkg/enums"
)

// Ad is a subscription-slot listing. Listings are soft deleted by flipping
// IsActive; public reads filter on it, owner and direct-id reads do not.
type Ad struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string             `gorm:"type:text;not null"`
	Description   string             `gorm:"type:text;not null"`
	PlatformID    uuid.UUID          `gorm:"column:platform_id;type:uuid;not null"`
	Price         decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	DurationValue int                `gorm:"column:duration_value;not null"`
	DurationUnit  enums.DurationUnit `gorm:"column:duration_unit;type:text;not null"`
	ContactEmail  string             `gorm:"column:contact_email;not null"`
	UserID        uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedBy     uuid.UUID          `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy     uuid.UUID          `gorm:"column:updated_by;type:uuid;not null"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
