package ads

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
)

const (
	msgProvideAdFields = "Please provide title, description, platform, price, duration (value & unit), and contactEmail"
	msgDurationPartial = "Duration must include both value and unit"
	msgInvalidUnit     = "Invalid duration unit"
	msgInvalidAdID     = "Invalid ad id"
	msgAdNotFound      = "Ad not found"
)

// bucketLimit caps the duration-bucket listings on the landing page.
const bucketLimit = 4

// AdStore is the persistence surface the listing service needs.
type AdStore interface {
	Create(ctx context.Context, ad *models.Ad) error
	ListActive(ctx context.Context, search string) ([]models.Ad, error)
	ListActiveByUnit(ctx context.Context, unit enums.DurationUnit, limit int) ([]models.Ad, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Ad, error)
	FindOwned(ctx context.Context, owner, id uuid.UUID) (*models.Ad, error)
	ListOwned(ctx context.Context, owner uuid.UUID) ([]models.Ad, error)
	Save(ctx context.Context, ad *models.Ad) error
}

// PosterStore resolves the owning user for the details endpoint.
type PosterStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service defines the behavior needed by the ads controllers.
type Service interface {
	Post(ctx context.Context, owner uuid.UUID, req PostAdRequest) (*AdDTO, error)
	ListPublic(ctx context.Context, query string) ([]*AdDTO, error)
	ListByDurationUnit(ctx context.Context, unit enums.DurationUnit) ([]*AdDTO, error)
	GetByID(ctx context.Context, id string) (*AdDTO, error)
	GetDetailsByID(ctx context.Context, id string) (*AdDetailsDTO, error)
	Mine(ctx context.Context, owner uuid.UUID) ([]*AdDTO, error)
	MineByID(ctx context.Context, owner uuid.UUID, id string) (*AdDTO, error)
	Update(ctx context.Context, owner uuid.UUID, id string, req UpdateAdRequest) (*AdDTO, error)
	Deactivate(ctx context.Context, owner uuid.UUID, id string) error
}

type service struct {
	store   AdStore
	posters PosterStore
}

// ServiceParams bundles the dependencies required to build a listing service.
type ServiceParams struct {
	Store   AdStore
	Posters PosterStore
}

// NewService constructs a listing service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("ad store is required")
	}
	if params.Posters == nil {
		return nil, fmt.Errorf("poster store is required")
	}
	return &service{store: params.Store, posters: params.Posters}, nil
}

func (s *service) Post(ctx context.Context, owner uuid.UUID, req PostAdRequest) (*AdDTO, error) {
	if req.Title == "" || req.Description == "" || req.Platform == "" || req.Price == nil ||
		req.Duration == nil || req.Duration.Value == nil || req.Duration.Unit == nil ||
		req.ContactEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProvideAdFields)
	}

	platformID, err := uuid.Parse(req.Platform)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid platform id")
	}
	unit, err := enums.ParseDurationUnit(*req.Duration.Unit)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidUnit)
	}
	if *req.Duration.Value < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Duration value must be at least 1")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Price cannot be negative")
	}

	ad := &models.Ad{
		Title:         req.Title,
		Description:   req.Description,
		PlatformID:    platformID,
		Price:         *req.Price,
		DurationValue: *req.Duration.Value,
		DurationUnit:  unit,
		ContactEmail:  req.ContactEmail,
		UserID:        owner,
		CreatedBy:     owner,
		UpdatedBy:     owner,
		IsActive:      true,
	}
	if err := s.store.Create(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ad")
	}
	return FromModel(ad), nil
}

func (s *service) ListPublic(ctx context.Context, query string) ([]*AdDTO, error) {
	list, err := s.store.ListActive(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ads")
	}
	return FromModels(list), nil
}

func (s *service) ListByDurationUnit(ctx context.Context, unit enums.DurationUnit) ([]*AdDTO, error) {
	if !unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidUnit)
	}
	list, err := s.store.ListActiveByUnit(ctx, unit, bucketLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ads by unit")
	}
	return FromModels(list), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*AdDTO, error) {
	ad, err := s.loadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(ad), nil
}

func (s *service) GetDetailsByID(ctx context.Context, id string) (*AdDetailsDTO, error) {
	ad, err := s.loadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	poster, err := s.posters.FindByID(ctx, ad.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgAdNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve poster")
	}
	return &AdDetailsDTO{
		AdDTO:  *FromModel(ad),
		Poster: accounts.FromUserModel(poster),
	}, nil
}

func (s *service) Mine(ctx context.Context, owner uuid.UUID) ([]*AdDTO, error) {
	list, err := s.store.ListOwned(ctx, owner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list owned ads")
	}
	return FromModels(list), nil
}

func (s *service) MineByID(ctx context.Context, owner uuid.UUID, id string) (*AdDTO, error) {
	ad, err := s.loadOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return FromModel(ad), nil
}

func (s *service) Update(ctx context.Context, owner uuid.UUID, id string, req UpdateAdRequest) (*AdDTO, error) {
	if req.Duration != nil && (req.Duration.Value == nil || req.Duration.Unit == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgDurationPartial)
	}

	ad, err := s.loadOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.Platform != nil {
		platformID, err := uuid.Parse(*req.Platform)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid platform id")
		}
		ad.PlatformID = platformID
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Price cannot be negative")
		}
		ad.Price = *req.Price
	}
	if req.Duration != nil {
		unit, err := enums.ParseDurationUnit(*req.Duration.Unit)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidUnit)
		}
		if *req.Duration.Value < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Duration value must be at least 1")
		}
		ad.DurationValue = *req.Duration.Value
		ad.DurationUnit = unit
	}
	if req.ContactEmail != nil {
		ad.ContactEmail = *req.ContactEmail
	}
	ad.UpdatedBy = owner

	if err := s.store.Save(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist ad")
	}
	return FromModel(ad), nil
}

func (s *service) Deactivate(ctx context.Context, owner uuid.UUID, id string) error {
	ad, err := s.loadOwned(ctx, owner, id)
	if err != nil {
		return err
	}
	if !ad.IsActive {
		return nil
	}
	ad.IsActive = false
	ad.UpdatedBy = owner
	if err := s.store.Save(ctx, ad); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist ad")
	}
	return nil
}

func (s *service) loadByID(ctx context.Context, id string) (*models.Ad, error) {
	adID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidAdID)
	}
	ad, err := s.store.FindByID(ctx, adID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgAdNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup ad")
	}
	return ad, nil
}

// loadOwned returns the same not-found error for a missing listing and for
// one owned by somebody else.
func (s *service) loadOwned(ctx context.Context, owner uuid.UUID, id string) (*models.Ad, error) {
	adID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidAdID)
	}
	ad, err := s.store.FindOwned(ctx, owner, adID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgAdNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup ad")
	}
	return ad, nil
}
