package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for catalog entries.
type CategoryDTO struct {
	ID         uuid.UUID `json:"id"`
	CategoryID string    `json:"categoryId"`
	Category   string    `json:"category"`
	Platform   string    `json:"platform"`
	UserID     uuid.UUID `json:"user"`
	CreatedBy  uuid.UUID `json:"createdBy"`
	UpdatedBy  uuid.UUID `json:"updatedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AddCategoryRequest carries the catalog creation payload.
type AddCategoryRequest struct {
	Category string `json:"category"`
	Platform string `json:"platform"`
}

func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:         c.ID,
		CategoryID: c.CategoryID,
		Category:   c.Category,
		Platform:   c.Platform,
		UserID:     c.UserID,
		CreatedBy:  c.CreatedBy,
		UpdatedBy:  c.UpdatedBy,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func FromModels(list []models.Category) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
