package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/pagination"
)

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category, assigning the stable public identifier when
// the caller did not provide one.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CategoryID == "" {
		category.CategoryID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// ListPage returns a page of categories, newest first, and the total count.
func (r *Repository) ListPage(ctx context.Context, page, pageSize int) ([]models.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Category
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(pagination.Offset(page, pageSize)).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll returns the full catalog, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindByPair looks up a category by its (category, platform) pair.
func (r *Repository) FindByPair(ctx context.Context, category, platform string) (*models.Category, error) {
	var found models.Category
	err := r.db.WithContext(ctx).
		Where("category = ? AND platform = ?", category, platform).
		First(&found).Error
	if err != nil {
		return nil, err
	}
	return &found, nil
}
