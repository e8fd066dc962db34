package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#e63948") // red
	colorMatch     = lipgloss.Color("#D4AF37") // gold
	colorError     = lipgloss.Color("9")       // red
	colorMuted     = lipgloss.Color("8")       // gray
	colorAccent    = lipgloss.Color("#11C3DB") // cyan
	colorHighlight = lipgloss.Color("15")      // white
)

// Pane border styles
var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted)
)

// Title style for pane headers
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Background(colorPrimary).
	Padding(0, 1)

// Report styles
var (
	reportBlockStyle = lipgloss.NewStyle().Foreground(colorAccent)
	reportValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMatch)
	reportNoneStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	reportErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// Status bar
var statusBarStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// Help styles
var (
	helpKeyStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	helpDescStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
)

// Modal overlay style
var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// paneBorder returns the border style for a pane with the given focus.
func paneBorder(focused bool) lipgloss.Style {
	if focused {
		return activeBorderStyle
	}
	return inactiveBorderStyle
}
