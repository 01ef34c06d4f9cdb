package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewWriter.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

func init() {
	// render everything in full color; writers downsample per destination
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// NewWriter wraps w so styled output matches what w can display.
func NewWriter(w io.Writer, mode string) io.Writer {
	cw := colorprofile.NewWriter(w, os.Environ())
	switch mode {
	case ColorNever:
		cw.Profile = colorprofile.NoTTY
	case ColorAlways:
		cw.Profile = colorprofile.TrueColor
	}
	return cw
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether prompts can be shown: stdin is a terminal.
func IsInteractive() bool {
	return IsTerminal(os.Stdin)
}
