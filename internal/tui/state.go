package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the current screen of an interactive model.
type ViewState int

const (
	// ViewStateLoading shows a spinner while the fetch is in flight.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the table.
	ViewStateList
	// ViewStateError shows the fetch error and the retry hint.
	ViewStateError
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

// String returns the state name for logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateError:
		return "error"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Key bindings shared by the interactive models.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyRetry    = "r"
	keyS        = "s"
	keyLeft     = "left"
	keyRight    = "right"
	keyH        = "h"
	keyL        = "l"
	keyNext     = "n"
	keyPrev     = "p"
	keyPgDown   = "pgdown"
	keyPgUp     = "pgup"
	keyHome     = "home"
	keyEnd      = "end"
	keyColumn1  = "1"
	keyColumn2  = "2"
	keyColumn3  = "3"
	keyColumn4  = "4"
	loadingText = "Loading cooperatives..."
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30
	minHeight     = 5
)

// LoadingState wraps the spinner shown while data is loading.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a loading indicator with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingState{spinner: s, message: loadingText}
}

// Init starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner and its message.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return loadingText
	}
	return loading.spinner.View() + " " + InfoStyle.Render(loading.message)
}
