package accounts

import (
	"context"
	"fmt"

	"github.com/subslot/subslot-backend/pkg/db/models"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/pagination"
	"github.com/subslot/subslot-backend/pkg/types"
)

// UserLister is the persistence surface the directory needs.
type UserLister interface {
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
}

// Directory exposes the admin-facing account listing.
type Directory interface {
	ListUsers(ctx context.Context, page int) ([]*UserDTO, types.Pagination, error)
}

type directory struct {
	users UserLister
}

// NewDirectory constructs the account directory service.
func NewDirectory(users UserLister) (Directory, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	return &directory{users: users}, nil
}

func (d *directory) ListUsers(ctx context.Context, page int) ([]*UserDTO, types.Pagination, error) {
	page = pagination.Normalize(page)
	list, total, err := d.users.List(ctx, page, pagination.DefaultPageSize)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromUserModels(list), pagination.Meta(total, page, pagination.DefaultPageSize), nil
}
