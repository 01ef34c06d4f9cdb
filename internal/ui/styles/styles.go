// Package styles provides shared lipgloss styles and icons for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the list table, messages and prompts.
package styles

import "github.com/charmbracelet/lipgloss"

// Primary colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary lipgloss.TerminalColor = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items (pink)
	Accent lipgloss.TerminalColor = lipgloss.Color("212")

	// Success is used for the current worktree and clean state (green)
	Success lipgloss.TerminalColor = lipgloss.Color("82")

	// Warning is used for dirty worktrees (yellow)
	Warning lipgloss.TerminalColor = lipgloss.Color("220")

	// Error is used for errors and rebase indicators (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Hint is used for follow-up advice under errors (cyan)
	Hint lipgloss.TerminalColor = lipgloss.Color("45")

	// Muted is used for secondary columns (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal lipgloss.TerminalColor = lipgloss.Color("252")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// CurrentStyle marks the worktree the user is in.
	CurrentStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	NormalStyle = lipgloss.NewStyle().Foreground(Normal)

	// HighlightStyle for matched characters in the picker
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)

// Message label styles
var (
	ErrorLabel   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarningLabel = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	SuccessLabel = lipgloss.NewStyle().Foreground(Success).Bold(true)
	HintLabel    = lipgloss.NewStyle().Foreground(Hint)
)
