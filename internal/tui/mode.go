package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain writes an uncolored text table.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes a static lipgloss-styled page.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea table.
	OutputModeInteractive
)

// fallbackWidth is used when the terminal size is unknown.
const fallbackWidth = 100

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DetectOutputMode picks the richest mode the environment supports.
// plain always wins. Without a TTY on stdout the result is plain unless
// forceColor is set. NO_COLOR or noColor downgrade to plain; CI or a
// non-interactive stdin downgrade to styled.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, isTerminal(os.Stdout), isTerminal(os.Stdin), os.LookupEnv)
}

func detectOutputMode(
	forceColor, noColor, plain bool,
	stdoutTTY, stdinTTY bool,
	lookupEnv func(string) (string, bool),
) OutputMode {
	if plain {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok || noColor {
		return OutputModePlain
	}
	if !stdoutTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if termName, _ := lookupEnv("TERM"); termName == "dumb" {
		return OutputModePlain
	}
	if _, ok := lookupEnv("CI"); ok || !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or a fallback when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
