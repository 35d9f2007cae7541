package viz

import (
	"os"

	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// TerminalSize reports the size of stdout, or 80x24 when stdout is not a
// terminal.
func TerminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth, fallbackHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
