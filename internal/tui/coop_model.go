package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/coopview/internal/cli/pagination"
	"github.com/rshade/coopview/internal/coop"
	"github.com/rshade/coopview/internal/logging"
)

// CoopFetcher is a context-aware function that loads the cooperatives list.
// The fetcher should check ctx.Done() to support cancellation.
type CoopFetcher func(ctx context.Context) ([]coop.Cooperativa, error)

// coopsLoadedMsg carries the result of one fetch.
type coopsLoadedMsg struct {
	items []coop.Cooperativa
	err   error
}

// chromeHeight is the number of lines used by title, footer and help.
const chromeHeight = 8

// CoopTableModel is the Bubble Tea model for the sortable, paginated cooperatives table.
type CoopTableModel struct {
	ctx     context.Context
	fetcher CoopFetcher

	// View state
	state ViewState
	items []coop.Cooperativa // Original API order (source of truth)
	rows  []coop.Cooperativa // Sorted for display

	// Sort and pagination
	sortCfg    pagination.SortConfig
	focusedCol pagination.SortKey
	page       int
	pageSize   int

	// Interactive components
	table   table.Model
	loading *LoadingState

	// Display configuration
	width  int
	height int

	err error
}

// NewCoopTableModel creates a model that starts loading as soon as the program runs.
// pageSize values below 1 fall back to pagination.DefaultPageSize.
func NewCoopTableModel(ctx context.Context, fetcher CoopFetcher, pageSize int) *CoopTableModel {
	if pageSize < pagination.MinPageSize {
		pageSize = pagination.DefaultPageSize
	}
	m := &CoopTableModel{
		ctx:      ctx,
		fetcher:  fetcher,
		pageSize: pageSize,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.reset()
	return m
}

// WithInitialSort applies a starting sort, e.g. from the --sort flag.
func (m *CoopTableModel) WithInitialSort(cfg pagination.SortConfig) *CoopTableModel {
	m.sortCfg = cfg
	m.focusedCol = cfg.Key
	return m
}

// reset returns the model to its freshly-mounted state.
func (m *CoopTableModel) reset() {
	m.state = ViewStateLoading
	m.items = nil
	m.rows = nil
	m.err = nil
	m.sortCfg = pagination.DefaultSortConfig()
	m.focusedCol = pagination.SortByName
	m.page = pagination.DefaultPage
	m.loading = NewLoadingState()
	m.rebuildTable()
}

// Init starts the spinner and the fetch.
func (m *CoopTableModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd())
}

func (m *CoopTableModel) fetchCmd() tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		items, err := fetcher(ctx)
		return coopsLoadedMsg{items: items, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *CoopTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resizing
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildTable()
		return m, nil
	}

	// Handle loading complete
	if loadMsg, ok := msg.(coopsLoadedMsg); ok {
		return m.handleLoadingComplete(loadMsg)
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateError:
		return m.handleErrorUpdate(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *CoopTableModel) handleLoadingComplete(msg coopsLoadedMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		log.Debug().Ctx(m.ctx).Err(msg.err).Msg("cooperatives fetch failed")
		return m, nil
	}

	m.items = msg.items
	m.state = ViewStateList
	m.refresh()
	log.Debug().Ctx(m.ctx).Int("count", len(m.items)).Msg("cooperatives loaded")
	return m, nil
}

func (m *CoopTableModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, nil
	}
	return m, m.loading.Update(msg)
}

func (m *CoopTableModel) handleErrorUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyRetry, keyEnter:
		logging.FromContext(m.ctx).Debug().Ctx(m.ctx).Msg("retrying cooperatives fetch")
		m.reset()
		return m, m.Init()
	}
	return m, nil
}

//nolint:gocyclo,cyclop // Key dispatch is a flat switch over the bindings.
func (m *CoopTableModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyColumn1:
		m.ToggleSort(pagination.SortByName)
	case keyColumn2:
		m.ToggleSort(pagination.SortByCNPJ)
	case keyColumn3:
		m.ToggleSort(pagination.SortByState)
	case keyColumn4:
		m.ToggleSort(pagination.SortBySystem)
	case keyLeft, keyH:
		m.focusedCol = (m.focusedCol + pagination.NumSortKeys - 1) % pagination.NumSortKeys
		m.rebuildTable()
	case keyRight, keyL:
		m.focusedCol = (m.focusedCol + 1) % pagination.NumSortKeys
		m.rebuildTable()
	case keyS, keyEnter:
		m.ToggleSort(m.focusedCol)
	case keyNext, keyPgDown:
		m.GoToPage(m.page + 1)
	case keyPrev, keyPgUp:
		m.GoToPage(m.page - 1)
	case keyHome:
		m.GoToPage(pagination.MinPage)
	case keyEnd:
		m.GoToPage(m.Meta().TotalPages)
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// ToggleSort cycles the sort on key and returns to the first page.
func (m *CoopTableModel) ToggleSort(key pagination.SortKey) {
	m.sortCfg = m.sortCfg.Toggle(key)
	m.focusedCol = key
	m.page = pagination.DefaultPage
	m.refresh()
}

// GoToPage moves to page, clamped to the available pages.
func (m *CoopTableModel) GoToPage(page int) {
	clamped := pagination.ClampPage(page, pagination.TotalPages(len(m.rows), m.pageSize))
	if clamped == m.page {
		return
	}
	m.page = clamped
	m.rebuildTable()
}

// refresh re-sorts the rows and rebuilds the table.
func (m *CoopTableModel) refresh() {
	m.rows = pagination.Sort(m.items, m.sortCfg)
	m.page = pagination.ClampPage(m.page, pagination.TotalPages(len(m.rows), m.pageSize))
	m.rebuildTable()
}

// rebuildTable reconstructs the table with the current page of rows.
func (m *CoopTableModel) rebuildTable() {
	m.table = m.buildTable()
}

// VisibleRows returns the rows on the current page.
func (m *CoopTableModel) VisibleRows() []coop.Cooperativa {
	return pagination.Paginate(m.rows, m.page, m.pageSize)
}

// Meta returns the pagination metadata for the current page.
func (m *CoopTableModel) Meta() pagination.Meta {
	return pagination.NewMeta(m.page, m.pageSize, len(m.rows))
}

// State returns the current view state.
func (m *CoopTableModel) State() ViewState {
	return m.state
}

// SortConfig returns the active sort.
func (m *CoopTableModel) SortConfig() pagination.SortConfig {
	return m.sortCfg
}

// FocusedColumn returns the column that s/enter toggles.
func (m *CoopTableModel) FocusedColumn() pagination.SortKey {
	return m.focusedCol
}

// CurrentPage returns the 1-based page number.
func (m *CoopTableModel) CurrentPage() int {
	return m.page
}

// Err returns the last fetch error, if any.
func (m *CoopTableModel) Err() error {
	return m.err
}

// View renders the current view.
func (m *CoopTableModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return renderTitle() + "\n\n" + RenderLoading(m.loading) + "\n"
	case ViewStateError:
		return renderTitle() + "\n\n" + RenderFetchError(m.err) + "\n"
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}
