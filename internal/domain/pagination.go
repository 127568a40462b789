package domain

import "fmt"

// Pagination defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is a validated limit/offset pair for list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// NewPagination validates a raw limit/offset pair.
func NewPagination(limit, offset int) (Pagination, error) {
	if limit <= 0 {
		return Pagination{}, fmt.Errorf("%w: limit must be positive", ErrValidation)
	}
	if limit > MaxPageSize {
		return Pagination{}, fmt.Errorf("%w: limit must be at most %d", ErrValidation, MaxPageSize)
	}
	if offset < 0 {
		return Pagination{}, fmt.Errorf("%w: offset must be non-negative", ErrValidation)
	}
	return Pagination{Limit: limit, Offset: offset}, nil
}

// PaginationFromPageSize converts a page/pageSize request into limit/offset.
func PaginationFromPageSize(page, pageSize int) (Pagination, error) {
	if page <= 0 {
		return Pagination{}, fmt.Errorf("%w: page must be positive", ErrValidation)
	}
	if pageSize <= 0 {
		return Pagination{}, fmt.Errorf("%w: page size must be positive", ErrValidation)
	}
	if pageSize > MaxPageSize {
		return Pagination{}, fmt.Errorf("%w: page size must be at most %d", ErrValidation, MaxPageSize)
	}
	return Pagination{
		Limit:  pageSize,
		Offset: pageSize * (page - 1),
	}, nil
}
