package ads

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
)

// Repository exposes listing persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an ads repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new listing.
func (r *Repository) Create(ctx context.Context, ad *models.Ad) error {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(ad).Error
}

// ListActive returns active listings newest first, optionally filtered by a
// case-insensitive title substring. The search term is matched literally:
// LIKE metacharacters are escaped so it is never treated as a pattern.
func (r *Repository) ListActive(ctx context.Context, search string) ([]models.Ad, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC")
	if search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}

	var list []models.Ad
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListActiveByUnit returns the most recent active listings in a duration
// bucket, capped at limit.
func (r *Repository) ListActiveByUnit(ctx context.Context, unit enums.DurationUnit, limit int) ([]models.Ad, error) {
	var list []models.Ad
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND duration_unit = ?", true, unit).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID loads a listing regardless of its active state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// FindOwned loads a listing only when it belongs to owner. A missing row and
// an ownership mismatch are indistinguishable to the caller.
func (r *Repository) FindOwned(ctx context.Context, owner, id uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&ad).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// ListOwned returns every listing owned by owner, active or not, newest first.
func (r *Repository) ListOwned(ctx context.Context, owner uuid.UUID) ([]models.Ad, error) {
	var list []models.Ad
	err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Save persists the full listing record.
func (r *Repository) Save(ctx context.Context, ad *models.Ad) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
