package pagination

import (
	"github.com/rshade/coopview/internal/coop"
)

// Meta describes one page of results.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	StartItem   int  `json:"start_item"   yaml:"start_item"`
	EndItem     int  `json:"end_item"     yaml:"end_item"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// TotalPages returns ceil(total/pageSize), or 0 for an empty list.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// NewMeta computes the metadata for page of a list with total items.
// StartItem and EndItem are 1-based and inclusive; both are 0 when the page is empty.
func NewMeta(page, pageSize, total int) Meta {
	totalPages := TotalPages(total, pageSize)

	start := (page-1)*pageSize + 1
	end := page * pageSize
	if end > total {
		end = total
	}
	if total == 0 || start > total {
		start, end = 0, 0
	}

	return Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		StartItem:   start,
		EndItem:     end,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// ClampPage keeps page within [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if totalPages < MinPage {
		totalPages = MinPage
	}
	switch {
	case page < MinPage:
		return MinPage
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Paginate returns the rows of the given 1-based page.
// Pages past the end of the list yield an empty slice.
func Paginate(items []coop.Cooperativa, page, pageSize int) []coop.Cooperativa {
	if page < MinPage || pageSize < MinPageSize {
		return []coop.Cooperativa{}
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []coop.Cooperativa{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// Page is a sorted, sliced view over a fetched list.
type Page struct {
	Items []coop.Cooperativa
	Meta  Meta
}

// Apply sorts items by p.Sort and slices out p.Page.
func (p Params) Apply(items []coop.Cooperativa) Page {
	sorted := Sort(items, p.Sort)
	return Page{
		Items: Paginate(sorted, p.Page, p.PageSize),
		Meta:  NewMeta(p.Page, p.PageSize, len(sorted)),
	}
}
