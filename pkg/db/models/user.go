package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/pkg/enums"
)

// User is a marketplace account that can post and rent subscription slots.
// Email is stored lowercased. OTP and OTPExpires are set and cleared together.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	Phone        *string    `gorm:"column:phone"`
	Address      *string    `gorm:"column:address"`
	City         *string    `gorm:"column:city"`
	State        *string    `gorm:"column:state"`
	Zip          *string    `gorm:"column:zip"`
	Role         enums.Role `gorm:"type:text;not null;default:'user'"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	IsVerified   bool       `gorm:"column:is_verified;not null;default:false"`
	OTP          *string    `gorm:"column:otp"`
	OTPExpires   *time.Time `gorm:"column:otp_expires"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
