package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorAccent  = lipgloss.Color("63")
	colorSubtle  = lipgloss.Color("241")
	colorBorder  = lipgloss.Color("240")
	colorError   = lipgloss.Color("196")
	colorSelFg   = lipgloss.Color("229")
	colorSelBg   = lipgloss.Color("57")
	colorInfo    = lipgloss.Color("39")
	colorLabel   = lipgloss.Color("250")
	colorValue   = lipgloss.Color("255")
	boxPaddingLR = 1
)

//nolint:gochecknoglobals // Shared immutable lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	InfoStyle   = lipgloss.NewStyle().Foreground(colorInfo)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorLabel)
	ValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorValue)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, boxPaddingLR)
	SpinnerStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorBorder).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorSelFg).
				Background(colorSelBg).
				Bold(false)
	DisabledStyle = lipgloss.NewStyle().Foreground(colorBorder)
)
