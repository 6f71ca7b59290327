package ads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
)

// Duration is the exposed rental-window shape, nested the way clients send it.
type Duration struct {
	Value int                `json:"value"`
	Unit  enums.DurationUnit `json:"unit"`
}

// AdDTO is the transport shape for listings.
type AdDTO struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Platform     uuid.UUID       `json:"platform"`
	Price        decimal.Decimal `json:"price"`
	Duration     Duration        `json:"duration"`
	ContactEmail string          `json:"contactEmail"`
	UserID       uuid.UUID       `json:"user"`
	CreatedBy    uuid.UUID       `json:"createdBy"`
	UpdatedBy    uuid.UUID       `json:"updatedBy"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// AdDetailsDTO adds the denormalized poster record for the details endpoint.
type AdDetailsDTO struct {
	AdDTO
	Poster *accounts.UserDTO `json:"poster"`
}

// DurationInput is the request-side duration; pointers distinguish absent
// fields from zero values.
type DurationInput struct {
	Value *int    `json:"value"`
	Unit  *string `json:"unit"`
}

// PostAdRequest carries the listing creation payload.
type PostAdRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Platform     string           `json:"platform"`
	Price        *decimal.Decimal `json:"price"`
	Duration     *DurationInput   `json:"duration"`
	ContactEmail string           `json:"contactEmail"`
}

// UpdateAdRequest carries the partial update payload. Nil means unchanged.
type UpdateAdRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Platform     *string          `json:"platform"`
	Price        *decimal.Decimal `json:"price"`
	Duration     *DurationInput   `json:"duration"`
	ContactEmail *string          `json:"contactEmail"`
}

// GetAdByIDRequest is the body-carried id lookup used by the ads endpoints.
type GetAdByIDRequest struct {
	ID string `json:"id"`
}

func FromModel(ad *models.Ad) *AdDTO {
	if ad == nil {
		return nil
	}
	return &AdDTO{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Platform:    ad.PlatformID,
		Price:       ad.Price,
		Duration: Duration{
			Value: ad.DurationValue,
			Unit:  ad.DurationUnit,
		},
		ContactEmail: ad.ContactEmail,
		UserID:       ad.UserID,
		CreatedBy:    ad.CreatedBy,
		UpdatedBy:    ad.UpdatedBy,
		IsActive:     ad.IsActive,
		CreatedAt:    ad.CreatedAt,
		UpdatedAt:    ad.UpdatedAt,
	}
}

func FromModels(list []models.Ad) []*AdDTO {
	out := make([]*AdDTO, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
