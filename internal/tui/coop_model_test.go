package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/coopview/internal/cli/pagination"
	"github.com/rshade/coopview/internal/coop"
)

func makeCoops(n int) []coop.Cooperativa {
	items := make([]coop.Cooperativa, n)
	for i := range n {
		items[i] = coop.Cooperativa{
			ID:         fmt.Sprintf("id-%02d", i),
			Name:       fmt.Sprintf("Coop %02d", n-i),
			CNPJ:       fmt.Sprintf("%014d", i),
			State:      "RS",
			CoopSystem: coop.CoopSystem{Name: "Sicredi"},
		}
	}
	return items
}

func staticFetcher(items []coop.Cooperativa, err error) CoopFetcher {
	return func(context.Context) ([]coop.Cooperativa, error) {
		return items, err
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a model that has already received the fetch result.
func loadedModel(t *testing.T, items []coop.Cooperativa) *CoopTableModel {
	t.Helper()
	m := NewCoopTableModel(context.Background(), staticFetcher(items, nil), 10)
	_, _ = m.Update(coopsLoadedMsg{items: items})
	require.Equal(t, ViewStateList, m.State())
	return m
}

func send(m *CoopTableModel, msg tea.Msg) (*CoopTableModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*CoopTableModel), cmd
}

func TestNewCoopTableModel(t *testing.T) {
	m := NewCoopTableModel(context.Background(), staticFetcher(nil, nil), 0)

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Equal(t, pagination.DefaultPageSize, m.pageSize)
	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, pagination.DefaultSortConfig(), m.SortConfig())
	assert.Contains(t, m.View(), "Loading cooperatives")
}

func TestCoopTableModel_InitFetches(t *testing.T) {
	items := makeCoops(3)
	m := NewCoopTableModel(context.Background(), staticFetcher(items, nil), 10)

	cmd := m.Init()
	require.NotNil(t, cmd)

	// Drain the batch and find the fetch result among the produced messages.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var loaded *coopsLoadedMsg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, isLoaded := c().(coopsLoadedMsg); isLoaded {
			loaded = &msg
		}
	}
	require.NotNil(t, loaded)
	assert.Len(t, loaded.items, 3)
}

func TestCoopTableModel_LoadSuccess(t *testing.T) {
	m := loadedModel(t, makeCoops(25))

	assert.Len(t, m.VisibleRows(), 10)
	meta := m.Meta()
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 1, meta.StartItem)
	assert.Equal(t, 10, meta.EndItem)

	view := m.View()
	assert.Contains(t, view, "Showing 1 to 10 of 25 results")
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "Cooperative System")
}

func TestCoopTableModel_LoadErrorAndRetry(t *testing.T) {
	m := NewCoopTableModel(context.Background(), staticFetcher(nil, nil), 10)
	m, _ = send(m, coopsLoadedMsg{err: errors.New("API error: 503 - Service Unavailable")})

	assert.Equal(t, ViewStateError, m.State())
	assert.Contains(t, m.View(), "Error: API error: 503 - Service Unavailable")
	assert.Contains(t, m.View(), "Try again")

	m, cmd := send(m, keyRunes("r"))
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Nil(t, m.Err())
	assert.NotNil(t, cmd, "retry must start a new fetch")
}

func TestCoopTableModel_RetryResetsSortAndPage(t *testing.T) {
	m := loadedModel(t, makeCoops(25))
	m.ToggleSort(pagination.SortByState)
	m.GoToPage(2)

	m, _ = send(m, coopsLoadedMsg{err: errors.New("boom")})
	m, _ = send(m, keyRunes("r"))

	assert.Equal(t, pagination.DefaultSortConfig(), m.SortConfig())
	assert.Equal(t, 1, m.CurrentPage())
	assert.Empty(t, m.VisibleRows())
}

func TestCoopTableModel_SortCycle(t *testing.T) {
	items := makeCoops(12)
	m := loadedModel(t, items)

	// Original order: "Coop 12" first.
	assert.Equal(t, "Coop 12", m.VisibleRows()[0].Name)

	m, _ = send(m, keyRunes("1"))
	assert.Equal(t, pagination.SortConfig{Key: pagination.SortByName, Direction: pagination.SortAsc}, m.SortConfig())
	assert.Equal(t, "Coop 01", m.VisibleRows()[0].Name)

	m, _ = send(m, keyRunes("1"))
	assert.Equal(t, pagination.SortDesc, m.SortConfig().Direction)
	assert.Equal(t, "Coop 12", m.VisibleRows()[0].Name)

	m, _ = send(m, keyRunes("1"))
	assert.Equal(t, pagination.SortNone, m.SortConfig().Direction)
	assert.Equal(t, items[0].ID, m.VisibleRows()[0].ID, "none restores the original order")
}

func TestCoopTableModel_SortResetsPage(t *testing.T) {
	m := loadedModel(t, makeCoops(25))
	m, _ = send(m, keyRunes("n"))
	require.Equal(t, 2, m.CurrentPage())

	m, _ = send(m, keyRunes("2"))
	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, pagination.SortByCNPJ, m.SortConfig().Key)
}

func TestCoopTableModel_FocusedColumnSort(t *testing.T) {
	m := loadedModel(t, makeCoops(5))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, pagination.SortByState, m.FocusedColumn())

	m, _ = send(m, keyRunes("s"))
	assert.Equal(t, pagination.SortConfig{Key: pagination.SortByState, Direction: pagination.SortAsc}, m.SortConfig())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, pagination.SortBySystem, m.FocusedColumn(), "focus wraps around")
}

func TestCoopTableModel_Pagination(t *testing.T) {
	m := loadedModel(t, makeCoops(25))

	m, _ = send(m, keyRunes("p"))
	assert.Equal(t, 1, m.CurrentPage(), "previous is disabled on the first page")

	m, _ = send(m, keyRunes("n"))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 3, m.CurrentPage())
	assert.Len(t, m.VisibleRows(), 5)
	assert.Contains(t, m.View(), "Showing 21 to 25 of 25 results")

	m, _ = send(m, keyRunes("n"))
	assert.Equal(t, 3, m.CurrentPage(), "next is disabled on the last page")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 1, m.CurrentPage())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 3, m.CurrentPage())
}

func TestCoopTableModel_EmptyList(t *testing.T) {
	m := loadedModel(t, []coop.Cooperativa{})

	m, _ = send(m, keyRunes("n"))
	assert.Equal(t, 1, m.CurrentPage())
	assert.Empty(t, m.VisibleRows())
	assert.Contains(t, m.View(), "No results")
	assert.Contains(t, m.View(), "Page 1 of 1")
}

func TestCoopTableModel_Quit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*CoopTableModel)
		key   tea.KeyMsg
	}{
		{"loading q", func(*CoopTableModel) {}, keyRunes("q")},
		{"list ctrl+c", func(m *CoopTableModel) { _, _ = m.Update(coopsLoadedMsg{items: makeCoops(1)}) }, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"error q", func(m *CoopTableModel) { _, _ = m.Update(coopsLoadedMsg{err: errors.New("x")}) }, keyRunes("q")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCoopTableModel(context.Background(), staticFetcher(nil, nil), 10)
			tt.setup(m)

			m, cmd := send(m, tt.key)
			assert.Equal(t, ViewStateQuitting, m.State())
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestCoopTableModel_WindowResize(t *testing.T) {
	m := loadedModel(t, makeCoops(3))
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 12})

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 12, m.height)
}

func TestCoopTableModel_WithInitialSort(t *testing.T) {
	cfg := pagination.SortConfig{Key: pagination.SortBySystem, Direction: pagination.SortDesc}
	m := NewCoopTableModel(context.Background(), staticFetcher(nil, nil), 10).WithInitialSort(cfg)

	_, _ = m.Update(coopsLoadedMsg{items: makeCoops(2)})
	assert.Equal(t, cfg, m.SortConfig())
	assert.Equal(t, pagination.SortBySystem, m.FocusedColumn())
}
