// Package engine loads cooperatives and shapes them for display.
package engine

import (
	"context"
	"fmt"

	"github.com/rshade/coopview/internal/api"
	"github.com/rshade/coopview/internal/cli/pagination"
	"github.com/rshade/coopview/internal/logging"
)

// ListCooperativas fetches the full list and returns the page selected by params.
// A page past the end is clamped to the last page, as the interactive table does.
func ListCooperativas(ctx context.Context, fetcher api.Fetcher, params pagination.Params) (pagination.Page, error) {
	if err := params.Validate(); err != nil {
		return pagination.Page{}, err
	}

	items, err := fetcher.FetchCooperativas(ctx)
	if err != nil {
		return pagination.Page{}, fmt.Errorf("loading cooperatives: %w", err)
	}

	last := pagination.TotalPages(len(items), params.PageSize)
	if clamped := pagination.ClampPage(params.Page, last); clamped != params.Page {
		logging.FromContext(ctx).Debug().Ctx(ctx).
			Str("component", "engine").
			Int("requested_page", params.Page).
			Int("page", clamped).
			Msg("page out of range, clamped")
		params.Page = clamped
	}

	page := params.Apply(items)
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "engine").
		Int("total", page.Meta.TotalItems).
		Int("page", page.Meta.CurrentPage).
		Str("sort", params.Sort.String()).
		Msg("cooperatives page computed")

	return page, nil
}
