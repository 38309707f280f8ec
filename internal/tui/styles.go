// Package tui provides the terminal dashboard for TalkDoc.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary = lipgloss.Color("#2EB8A6") // Teal
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleItem is used for medication names.
	StyleItem = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSlotLabel is used for slot identifiers.
	StyleSlotLabel = lipgloss.NewStyle().
			Bold(true)

	// StyleEmpty is used for empty slots.
	StyleEmpty = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleUnread is used for the unread notification badge.
	StyleUnread = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)
)

// Box styles for different sections.
var (
	// StyleSlotBox frames one dispenser slot in the grid.
	StyleSlotBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(16)

	// StyleFilledSlotBox frames a slot that holds an item.
	StyleFilledSlotBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 1).
				Width(16)

	// StyleSectionBox frames the reminder and notification sections.
	StyleSectionBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)
)

// HelpBar renders the keyboard shortcut help line.
func HelpBar() string {
	entries := []struct{ key, desc string }{
		{"r", "refresh"},
		{"n", "mark notifications read"},
		{"q", "quit"},
	}

	out := ""
	for i, e := range entries {
		if i > 0 {
			out += StyleSubtitle.Render("  •  ")
		}
		out += StyleHelpKey.Render(e.key) + StyleSubtitle.Render(" "+e.desc)
	}
	return StyleHelp.Render(out)
}
