// Package pagination provides the sort and page-slicing logic behind the cooperatives table.
//
// This package contains the logic shared by the interactive table and the plain renderers:
//   - Params: CLI flag parsing and validation (--page, --page-size, --sort)
//   - SortConfig: the active sort column and its tri-state direction
//   - Sort: locale-aware, stable ordering of cooperatives by a column
//   - Meta: response metadata for a single page of results
//
// Every view renders Paginate(Sort(fetched, cfg), page, size), so the displayed rows are
// always a correctly sorted, correctly paginated subset of the fetched list.
package pagination
