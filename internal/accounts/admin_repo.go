package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/pkg/db/models"
)

// AdminRepository exposes admin persistence operations.
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository constructs an admin repo bound to the provided GORM DB.
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin and returns the persisted model.
func (r *AdminRepository) Create(ctx context.Context, dto CreateAdminDTO) (*models.Admin, error) {
	admin := dto.ToModel()
	admin.Email = normalizeEmail(admin.Email)
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// FindByEmail retrieves the admin matching the provided email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmailAndOTP retrieves the admin holding the given verification code.
func (r *AdminRepository) FindByEmailAndOTP(ctx context.Context, email, code string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Where("email = ? AND otp = ?", normalizeEmail(email), code).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID loads an admin by their UUID.
func (r *AdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Save persists the full admin record.
func (r *AdminRepository) Save(ctx context.Context, admin *models.Admin) error {
	admin.Email = normalizeEmail(admin.Email)
	return r.db.WithContext(ctx).Save(admin).Error
}
