package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
)

// UserStore is the persistence surface the auth service needs for users.
type UserStore interface {
	Create(ctx context.Context, dto accounts.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndOTP(ctx context.Context, email, code string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error)
}

// AdminStore is the persistence surface the auth service needs for admins.
type AdminStore interface {
	Create(ctx context.Context, dto accounts.CreateAdminDTO) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByEmailAndOTP(ctx context.Context, email, code string) (*models.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	Save(ctx context.Context, admin *models.Admin) error
}

// account is a kind-neutral view over a user or admin record. The closures
// mutate the wrapped model so a later save persists every change at once.
type account struct {
	id           uuid.UUID
	passwordHash string
	verified     bool
	active       bool
	otpExpires   *time.Time
	markVerified func()
	reissueOTP   func(code string, expires time.Time)
	save         func(ctx context.Context) error
	dto          func() any
}

// accountKind adapts one account table to the shared OTP/login flows.
type accountKind interface {
	role() enums.Role
	credentialsMessage() string
	find(ctx context.Context, email string) (*account, error)
	findByOTP(ctx context.Context, email, code string) (*account, error)
	findByID(ctx context.Context, id uuid.UUID) (*account, error)
}

type userKind struct {
	store UserStore
}

func (k userKind) role() enums.Role           { return enums.RoleUser }
func (k userKind) credentialsMessage() string { return msgInvalidCredentials }

func (k userKind) find(ctx context.Context, email string) (*account, error) {
	u, err := k.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return k.wrap(u), nil
}

func (k userKind) findByOTP(ctx context.Context, email, code string) (*account, error) {
	u, err := k.store.FindByEmailAndOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}
	return k.wrap(u), nil
}

func (k userKind) findByID(ctx context.Context, id uuid.UUID) (*account, error) {
	u, err := k.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return k.wrap(u), nil
}

func (k userKind) wrap(u *models.User) *account {
	return &account{
		id:           u.ID,
		passwordHash: u.PasswordHash,
		verified:     u.IsVerified,
		active:       u.IsActive,
		otpExpires:   u.OTPExpires,
		markVerified: func() {
			u.OTP = nil
			u.OTPExpires = nil
			u.IsVerified = true
		},
		reissueOTP: func(code string, expires time.Time) {
			u.OTP = &code
			u.OTPExpires = &expires
			u.IsVerified = false
		},
		save: func(ctx context.Context) error { return k.store.Save(ctx, u) },
		dto:  func() any { return accounts.FromUserModel(u) },
	}
}

type adminKind struct {
	store AdminStore
}

func (k adminKind) role() enums.Role           { return enums.RoleAdmin }
func (k adminKind) credentialsMessage() string { return msgInvalidEmailOrPassword }

func (k adminKind) find(ctx context.Context, email string) (*account, error) {
	a, err := k.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return k.wrap(a), nil
}

func (k adminKind) findByOTP(ctx context.Context, email, code string) (*account, error) {
	a, err := k.store.FindByEmailAndOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}
	return k.wrap(a), nil
}

func (k adminKind) findByID(ctx context.Context, id uuid.UUID) (*account, error) {
	a, err := k.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return k.wrap(a), nil
}

func (k adminKind) wrap(a *models.Admin) *account {
	return &account{
		id:           a.ID,
		passwordHash: a.PasswordHash,
		verified:     a.IsVerified,
		active:       true,
		otpExpires:   a.OTPExpires,
		markVerified: func() {
			a.OTP = nil
			a.OTPExpires = nil
			a.IsVerified = true
		},
		reissueOTP: func(code string, expires time.Time) {
			a.OTP = &code
			a.OTPExpires = &expires
			a.IsVerified = false
		},
		save: func(ctx context.Context) error { return k.store.Save(ctx, a) },
		dto:  func() any { return accounts.FromAdminModel(a) },
	}
}
