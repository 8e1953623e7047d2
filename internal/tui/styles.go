package tui

import "github.com/charmbracelet/lipgloss"

// Palette and styles shared by the map, the panels and the tooltip.
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	panelBg   = lipgloss.Color("#0F141A")
	borderCol = lipgloss.Color("#243141")

	// plot edges: at rest, and while lit by hover, pin or filter
	outlineFg = lipgloss.Color("#4B5563")
	litEdgeFg = lipgloss.Color("#FFFFFF")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	boldStyle  = lipgloss.NewStyle().Bold(true)

	// floating boxes over the map
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	tipStyle = boxStyle.BorderForeground(accentFg).Background(panelBg)
)
