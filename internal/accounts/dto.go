package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
)

// UserDTO is the transport shape for users. It never carries the password
// hash or the OTP fields.
type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Phone      *string    `json:"phone,omitempty"`
	Address    *string    `json:"address,omitempty"`
	City       *string    `json:"city,omitempty"`
	State      *string    `json:"state,omitempty"`
	Zip        *string    `json:"zip,omitempty"`
	Role       enums.Role `json:"role"`
	IsActive   bool       `json:"isActive"`
	IsVerified bool       `json:"isVerified"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// AdminDTO is the transport shape for admins, with the same credential
// redactions as UserDTO.
type AdminDTO struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	OTP          *string
	OTPExpires   *time.Time
}

// CreateAdminDTO holds the data required by the repo to persist a new admin.
type CreateAdminDTO struct {
	Email        string
	PasswordHash string
	FullName     string
	OTP          *string
	OTPExpires   *time.Time
	IsVerified   bool
}

func FromUserModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Address:    u.Address,
		City:       u.City,
		State:      u.State,
		Zip:        u.Zip,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func FromAdminModel(a *models.Admin) *AdminDTO {
	if a == nil {
		return nil
	}
	return &AdminDTO{
		ID:         a.ID,
		Email:      a.Email,
		FullName:   a.FullName,
		Role:       enums.RoleAdmin.String(),
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func FromUserModels(list []models.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(list))
	for i := range list {
		out = append(out, FromUserModel(&list[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Role:         enums.RoleUser,
		IsActive:     true,
		IsVerified:   false,
		OTP:          c.OTP,
		OTPExpires:   c.OTPExpires,
	}
}

func (c CreateAdminDTO) ToModel() *models.Admin {
	return &models.Admin{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		IsVerified:   c.IsVerified,
		OTP:          c.OTP,
		OTPExpires:   c.OTPExpires,
	}
}
