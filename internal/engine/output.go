package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/coopview/internal/cli/pagination"
	"github.com/rshade/coopview/internal/coop"
)

// OutputFormat selects a non-interactive renderer.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
	OutputYAML   OutputFormat = "yaml"
)

// ErrUnsupportedFormat is returned for an unknown OutputFormat.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Column widths for the plain table.
const (
	colWidthName   = 40
	colWidthSystem = 30
)

// tabwriterPadding is the minimum padding between columns in the plain table.
const tabwriterPadding = 2

// IsValid reports whether f names a supported renderer.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// PageDocument is the structured form of a rendered page.
type PageDocument struct {
	Items      []coop.Cooperativa `json:"items"          yaml:"items"`
	Pagination pagination.Meta    `json:"pagination"     yaml:"pagination"`
	Sort       string             `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// RenderPage writes one page of cooperatives in the requested format.
func RenderPage(w io.Writer, format OutputFormat, page pagination.Page, sortCfg pagination.SortConfig) error {
	switch format {
	case OutputTable:
		return renderTable(w, page, sortCfg)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newPageDocument(page, sortCfg))
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, item := range page.Items {
			if err := enc.Encode(item); err != nil {
				return fmt.Errorf("encoding row %s: %w", item.ID, err)
			}
		}
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(newPageDocument(page, sortCfg)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func newPageDocument(page pagination.Page, sortCfg pagination.SortConfig) PageDocument {
	items := page.Items
	if items == nil {
		items = []coop.Cooperativa{}
	}
	return PageDocument{Items: items, Pagination: page.Meta, Sort: sortCfg.String()}
}

// renderTable writes the page as an aligned text table followed by the pagination footer.
func renderTable(w io.Writer, page pagination.Page, sortCfg pagination.SortConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "NAME %s\tCNPJ %s\tSTATE %s\tCOOPERATIVE SYSTEM %s\n",
		sortCfg.Indicator(pagination.SortByName),
		sortCfg.Indicator(pagination.SortByCNPJ),
		sortCfg.Indicator(pagination.SortByState),
		sortCfg.Indicator(pagination.SortBySystem),
	); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t----\t-----\t------------------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, c := range page.Items {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			Truncate(c.Name, colWidthName),
			coop.FormatCNPJ(c.CNPJ),
			c.State,
			Truncate(c.SystemName(), colWidthSystem),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n", ShowingLine(page.Meta), PageLine(page.Meta))
	return err
}

// footerPrinter formats counts with thousands separators.
//
//nolint:gochecknoglobals // Immutable printer; message.Printer is safe for concurrent use.
var footerPrinter = message.NewPrinter(language.English)

// ShowingLine renders "Showing <start> to <end> of <total> results".
func ShowingLine(meta pagination.Meta) string {
	if meta.TotalItems == 0 {
		return "No results"
	}
	return footerPrinter.Sprintf("Showing %d to %d of %d results", meta.StartItem, meta.EndItem, meta.TotalItems)
}

// PageLine renders "Page <n> of <total>". An empty list is shown as page 1 of 1.
func PageLine(meta pagination.Meta) string {
	total := meta.TotalPages
	if total < 1 {
		total = 1
	}
	return footerPrinter.Sprintf("Page %d of %d", meta.CurrentPage, total)
}

// truncateSuffix marks shortened cell values.
const truncateSuffix = "..."

// Truncate shortens s to at most maxLen runes, ending in "..." when cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= len(truncateSuffix) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(truncateSuffix)]) + truncateSuffix
}
