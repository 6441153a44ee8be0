package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// Params holds the CLI pagination and sort flags.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Sort is the active sort column and direction.
	Sort SortConfig
}

// NewParams creates Params with default values: first page, ten rows, original order.
func NewParams() *Params {
	return &Params{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSortConfig(),
	}
}

// Validate checks that the page and page size are within bounds.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort flag in the format "field" or "field:order".
// Examples: "name", "state:desc", "coopSystem.name:asc".
// An empty string yields the default configuration (original API order).
// A field without an order sorts ascending.
func ParseSort(sortStr string) (SortConfig, error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortConfig(), nil
	}

	parts := strings.Split(sortStr, ":")
	if len(parts) > sortPartsMax {
		return SortConfig{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return SortConfig{}, ErrEmptySortField
	}

	key, err := ParseSortKey(field)
	if err != nil {
		return SortConfig{}, err
	}

	dir := SortAsc
	if len(parts) == sortPartsMax {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case SortAsc.String():
			dir = SortAsc
		case SortDesc.String():
			dir = SortDesc
		default:
			return SortConfig{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, parts[1])
		}
	}

	return SortConfig{Key: key, Direction: dir}, nil
}
