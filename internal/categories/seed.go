package categories

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/pkg/config"
	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
	"github.com/subslot/subslot-backend/pkg/logger"
	"github.com/subslot/subslot-backend/pkg/security"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// defaultCategories is the fixed startup catalog.
var defaultCategories = []struct {
	Category string
	Platform string
}{
	{"Video Streaming", "Netflix"},
	{"Video Streaming", "YouTube"},
	{"Video Streaming", "Hotstar"},
	{"Video Streaming", "Hulu"},
	{"Video Streaming", "Amazon Prime"},
	{"Video Streaming", "HBO Max"},
	{"Audio Streaming", "Spotify"},
	{"Audio Streaming", "SoundCloud"},
	{"Audio Streaming", "Audible"},
	{"Audio Streaming", "Apple Music"},
	{"Online Storage", "Google Drive"},
	{"Online Storage", "Dropbox"},
	{"Online Storage", "OneDrive"},
}

// SeedUserStore is the user persistence surface the seeder needs.
type SeedUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto accounts.CreateUserDTO) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// SeedAdminStore is the admin persistence surface the seeder needs.
type SeedAdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, dto accounts.CreateAdminDTO) (*models.Admin, error)
}

// Seeder ensures the well-known admin account and the fixed catalog exist.
// Every step is idempotent so it runs on each boot.
type Seeder struct {
	categories  CategoryStore
	users       SeedUserStore
	admins      SeedAdminStore
	seedCfg     config.SeedConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// SeederParams bundles the dependencies required to build the seeder.
type SeederParams struct {
	Categories     CategoryStore
	Users          SeedUserStore
	Admins         SeedAdminStore
	SeedConfig     config.SeedConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

// NewSeeder constructs the startup seeder.
func NewSeeder(params SeederParams) (*Seeder, error) {
	if params.Categories == nil {
		return nil, fmt.Errorf("category store is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if params.Admins == nil {
		return nil, fmt.Errorf("admin store is required")
	}
	return &Seeder{
		categories:  params.Categories,
		users:       params.Users,
		admins:      params.Admins,
		seedCfg:     params.SeedConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

// Run ensures the seed admin, the matching seed user and all default
// (category, platform) pairs exist. Per-pair failures are aggregated so one
// broken pair does not block the rest.
func (s *Seeder) Run(ctx context.Context) error {
	user, err := s.ensureSeedAccounts(ctx)
	if err != nil {
		return err
	}

	var errs error
	for _, pair := range defaultCategories {
		_, err := s.categories.FindByPair(ctx, pair.Category, pair.Platform)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			errs = multierr.Append(errs, fmt.Errorf("lookup %s/%s: %w", pair.Category, pair.Platform, err))
			continue
		}

		category := &models.Category{
			Category:  pair.Category,
			Platform:  pair.Platform,
			UserID:    user.ID,
			CreatedBy: user.ID,
			UpdatedBy: user.ID,
		}
		if err := s.categories.Create(ctx, category); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed %s/%s: %w", pair.Category, pair.Platform, err))
		}
	}

	if errs == nil && s.logg != nil {
		s.logg.Info(ctx, "seed admin ensured and default categories present")
	}
	return errs
}

// ensureSeedAccounts creates the pre-verified seed admin plus a matching user
// record. The user exists only to satisfy catalog and listing ownership
// references.
func (s *Seeder) ensureSeedAccounts(ctx context.Context) (*models.User, error) {
	email := s.seedCfg.AdminEmail

	if _, err := s.admins.FindByEmail(ctx, email); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("lookup seed admin: %w", err)
		}
		hash, err := security.HashPassword(s.seedCfg.AdminPassword, s.passwordCfg)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := s.admins.Create(ctx, accounts.CreateAdminDTO{
			Email:        email,
			PasswordHash: hash,
			FullName:     s.seedCfg.AdminName,
			IsVerified:   true,
		}); err != nil {
			return nil, fmt.Errorf("create seed admin: %w", err)
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("lookup seed user: %w", err)
	}

	hash, err := security.HashPassword(s.seedCfg.AdminPassword, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	phone := "0000000000"
	user, err = s.users.Create(ctx, accounts.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		FirstName:    s.seedCfg.AdminName,
		LastName:     "Seeder",
		Phone:        &phone,
	})
	if err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}

	user.Role = enums.RoleAdmin
	user.IsVerified = true
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("promote seed user: %w", err)
	}
	return user, nil
}
