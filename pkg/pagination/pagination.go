package pagination

import (
	"github.com/subslot/subslot-backend/pkg/types"
)

// DefaultPageSize is the fixed page size for paged listings.
const DefaultPageSize = 10

// Normalize clamps a requested page number to a usable value. Pages are
// 1-based; zero and negative inputs fall back to the first page.
func Normalize(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts a 1-based page number into a row offset.
func Offset(page, pageSize int) int {
	return (Normalize(page) - 1) * pageSize
}

// Meta computes the pagination block for a page of results.
func Meta(total int64, page, pageSize int) types.Pagination {
	page = Normalize(page)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return types.Pagination{
		Total:    total,
		Page:     page,
		Pages:    pages,
		PageSize: pageSize,
	}
}
