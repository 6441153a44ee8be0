package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/coopview/internal/cli/pagination"
	"github.com/rshade/coopview/internal/coop"
	"github.com/rshade/coopview/internal/engine"
)

// Table column widths.
const (
	colWidthName   = 40
	colWidthCNPJ   = 20
	colWidthState  = 8
	colWidthSystem = 30
)

const (
	pageTitle    = "Cooperative Systems"
	pageSubtitle = "Sortable, paginated list of cooperatives."
	focusMarker  = "▸ "
	helpText     = "[1-4] Sort column  [←→] Focus  [s] Sort focused  [n/p] Page  [↑↓] Move  [q] Quit"
)

// columnTitles maps each sortable column to its header label.
//
//nolint:gochecknoglobals // Immutable lookup table.
var columnTitles = [pagination.NumSortKeys]string{
	pagination.SortByName:   "Name",
	pagination.SortByCNPJ:   "CNPJ",
	pagination.SortByState:  "State",
	pagination.SortBySystem: "Cooperative System",
}

// columnWidths maps each sortable column to its width.
//
//nolint:gochecknoglobals // Immutable lookup table.
var columnWidths = [pagination.NumSortKeys]int{
	pagination.SortByName:   colWidthName,
	pagination.SortByCNPJ:   colWidthCNPJ,
	pagination.SortByState:  colWidthState,
	pagination.SortBySystem: colWidthSystem,
}

// ColumnTitle returns the header text for key, with the sort indicator and,
// when focused, a leading marker.
func ColumnTitle(key pagination.SortKey, cfg pagination.SortConfig, focused bool) string {
	title := columnTitles[key] + " " + cfg.Indicator(key)
	if focused {
		return focusMarker + title
	}
	return title
}

// CoopRow converts a cooperative into display cells.
func CoopRow(c coop.Cooperativa) table.Row {
	return table.Row{
		engine.Truncate(c.Name, colWidthName),
		coop.FormatCNPJ(c.CNPJ),
		c.State,
		engine.Truncate(c.SystemName(), colWidthSystem),
	}
}

// buildTable creates a new table model for the current page.
func (m *CoopTableModel) buildTable() table.Model {
	columns := make([]table.Column, 0, pagination.NumSortKeys)
	for k := pagination.SortKey(0); k < pagination.NumSortKeys; k++ {
		columns = append(columns, table.Column{
			Title: ColumnTitle(k, m.sortCfg, k == m.focusedCol),
			Width: columnWidths[k],
		})
	}

	visible := m.VisibleRows()
	rows := make([]table.Row, len(visible))
	for i, c := range visible {
		rows[i] = CoopRow(c)
	}

	height := m.pageSize + 1
	if available := m.height - chromeHeight; height > available {
		height = available
	}
	if height < minHeight {
		height = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

func renderTitle() string {
	return HeaderStyle.Render(pageTitle) + "\n" + SubtleStyle.Render(pageSubtitle)
}

// RenderFetchError renders the error message and the retry hint.
func RenderFetchError(err error) string {
	msg := "failed to load data"
	if err != nil {
		msg = err.Error()
	}
	return ErrorStyle.Render("Error: "+msg) + "\n\n" + LabelStyle.Render("[r] Try again  [q] Quit")
}

// RenderFooter renders the result range and page navigation line.
// Navigation hints are dimmed when the move is not possible.
func RenderFooter(meta pagination.Meta) string {
	prev := LabelStyle.Render("[p] Previous")
	if !meta.HasPrevious {
		prev = DisabledStyle.Render("[p] Previous")
	}
	next := LabelStyle.Render("[n] Next")
	if !meta.HasNext {
		next = DisabledStyle.Render("[n] Next")
	}

	left := InfoStyle.Render(engine.ShowingLine(meta))
	right := fmt.Sprintf("%s  %s  %s", prev, ValueStyle.Render(engine.PageLine(meta)), next)
	return left + "    " + right
}

func (m *CoopTableModel) renderListView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderTitle(),
		"",
		m.table.View(),
		"",
		RenderFooter(m.Meta()),
		SubtleStyle.Render(helpText),
	)
}

// RenderStaticPage renders one page as a boxed, styled snapshot for terminals
// that cannot run the interactive table.
func RenderStaticPage(page pagination.Page, cfg pagination.SortConfig, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(pageTitle))
	content.WriteString("\n")

	header := make([]string, 0, pagination.NumSortKeys)
	for k := pagination.SortKey(0); k < pagination.NumSortKeys; k++ {
		header = append(header, fmt.Sprintf("%-*s", columnWidths[k], ColumnTitle(k, cfg, false)))
	}
	content.WriteString(TableHeaderStyle.Render(strings.Join(header, " ")))
	content.WriteString("\n")

	if len(page.Items) == 0 {
		content.WriteString(InfoStyle.Render("No cooperatives to display."))
		content.WriteString("\n")
	}
	for _, c := range page.Items {
		cells := CoopRow(c)
		line := make([]string, len(cells))
		for i, cell := range cells {
			line[i] = fmt.Sprintf("%-*s", columnWidths[i], cell)
		}
		content.WriteString(strings.Join(line, " "))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(LabelStyle.Render(engine.ShowingLine(page.Meta)))
	content.WriteString("  ")
	content.WriteString(ValueStyle.Render(engine.PageLine(page.Meta)))

	return BoxStyle.Width(width-borderPadding).Render(content.String()) + "\n"
}

// borderPadding accounts for the box's left and right borders.
const borderPadding = 2
