package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	_, _, mapWidth, mapHeight := m.mapRect()
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" masterplan ─ terminal master-plan viewer ")
	if m.selPath != "" {
		header += dimStyle.Render(" " + m.selPath)
	}
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(mapHeight).Render(m.l.View())
	}

	var mapView string
	if m.pasteMode {
		mapView = m.ta.View()
	} else {
		mapView = m.decorateMap(m.renderMap(mapWidth, mapHeight), mapWidth, mapHeight)
	}
	mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).MaxHeight(mapHeight).Render(mapView)

	// panels float over the map
	if m.showTable && !m.pasteMode {
		mapView = compose(boxStyle.Render(m.tbl.View()), mapView, overlay.Center, overlay.Center, 0, 0)
	}
	if m.showFilter && !m.pasteMode {
		mapView = compose(m.filter.view(len(m.matched)), mapView, overlay.Right, overlay.Top, 0, 0)
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	status := dimStyle.Render(" " + m.status + " ")
	info := ""
	if m.cv != nil {
		info = fmt.Sprintf("  %.2fx", m.cv.Transform().Scale)
		if m.hovering {
			info = fmt.Sprintf("  x=%.1f y=%.1f", m.hoverPlan.X, m.hoverPlan.Y) + info
		}
		info = dimStyle.Render(info + "  ")
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(info))
	line1 := status + strings.Repeat(" ", spacerW) + info
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(line1),
		lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(m.renderHelp()),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag pan",
		"wheel zoom",
		"right-drag pinch",
		"+/- zoom",
		"0 reset",
		"f fit",
		"Tab plans",
		"/ filter",
		"a villas",
		"p paste rows",
		"l legend",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
