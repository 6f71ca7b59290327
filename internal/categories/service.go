package categories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/pkg/db/models"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/logger"
	"github.com/subslot/subslot-backend/pkg/pagination"
	"github.com/subslot/subslot-backend/pkg/types"
)

const msgProvideCategoryFields = "Please provide both category and platform"

// publicListTTL bounds staleness of the cached public catalog dump.
const publicListTTL = 5 * time.Minute

// CategoryStore is the persistence surface the catalog service needs.
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	ListPage(ctx context.Context, page, pageSize int) ([]models.Category, int64, error)
	ListAll(ctx context.Context) ([]models.Category, error)
	FindByPair(ctx context.Context, category, platform string) (*models.Category, error)
}

// Cache is the read-through cache surface for the public catalog dump.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service defines the behavior needed by the category controllers.
type Service interface {
	Add(ctx context.Context, creator uuid.UUID, req AddCategoryRequest) (*CategoryDTO, error)
	ListPage(ctx context.Context, page int) ([]*CategoryDTO, types.Pagination, error)
	ListAllPublic(ctx context.Context) ([]*CategoryDTO, error)
}

type service struct {
	store CategoryStore
	cache Cache
	logg  *logger.Logger
}

// ServiceParams bundles the dependencies required to build a catalog service.
// Cache is optional; without it every public read hits the database.
type ServiceParams struct {
	Store  CategoryStore
	Cache  Cache
	Logger *logger.Logger
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("category store is required")
	}
	return &service{
		store: params.Store,
		cache: params.Cache,
		logg:  params.Logger,
	}, nil
}

// Add creates a catalog entry. Duplicate (category, platform) pairs are
// permitted here; only the startup seeder deduplicates.
func (s *service) Add(ctx context.Context, creator uuid.UUID, req AddCategoryRequest) (*CategoryDTO, error) {
	if req.Category == "" || req.Platform == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProvideCategoryFields)
	}

	category := &models.Category{
		Category:  req.Category,
		Platform:  req.Platform,
		UserID:    creator,
		CreatedBy: creator,
		UpdatedBy: creator,
	}
	if err := s.store.Create(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	s.invalidatePublicList(ctx)
	return FromModel(category), nil
}

func (s *service) ListPage(ctx context.Context, page int) ([]*CategoryDTO, types.Pagination, error) {
	page = pagination.Normalize(page)
	list, total, err := s.store.ListPage(ctx, page, pagination.DefaultPageSize)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return FromModels(list), pagination.Meta(total, page, pagination.DefaultPageSize), nil
}

func (s *service) ListAllPublic(ctx context.Context) ([]*CategoryDTO, error) {
	if cached, ok := s.readPublicList(ctx); ok {
		return cached, nil
	}

	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	dtos := FromModels(list)
	s.writePublicList(ctx, dtos)
	return dtos, nil
}

func (s *service) readPublicList(ctx context.Context) ([]*CategoryDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.publicListKey())
	if err != nil {
		return nil, false
	}
	var dtos []*CategoryDTO
	if err := json.Unmarshal([]byte(raw), &dtos); err != nil {
		// stale or corrupt entry, fall back to the database
		s.invalidatePublicList(ctx)
		return nil, false
	}
	return dtos, true
}

func (s *service) writePublicList(ctx context.Context, dtos []*CategoryDTO) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.publicListKey(), string(payload), publicListTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "caching category list failed")
	}
}

func (s *service) invalidatePublicList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.publicListKey()); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "invalidating category cache failed")
	}
}

func (s *service) publicListKey() string {
	return s.cache.CacheKey("categories", "all")
}
