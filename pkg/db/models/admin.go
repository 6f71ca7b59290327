package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office account. It shares the OTP verification lifecycle
// with users but carries no deactivation flag.
type Admin struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FullName     string     `gorm:"column:full_name;not null"`
	IsVerified   bool       `gorm:"column:is_verified;not null;default:false"`
	OTP          *string    `gorm:"column:otp"`
	OTPExpires   *time.Time `gorm:"column:otp_expires"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
