package tui

import (
	"fmt"
	"math"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"masterplan/internal/canvas"
	"masterplan/internal/plan"
)

const (
	zoomStep = 1.2

	// arrow key pan distance in micro-pixels
	panStepX = 8
	panStepY = 8

	// right-drag pinch: log scale change per map row of vertical motion
	pinchPerRow = 0.1
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	m.syncZoom()
	return m, cmd
}

// syncZoom reports canvas zoom notifications on the status line.
func (m *Model) syncZoom() {
	if m.zoom.dirty {
		m.zoom.dirty = false
		m.status = fmt.Sprintf("zoom: %.2fx", m.zoom.scale)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}
	if m.pasteMode {
		return m.handlePaste(msg)
	}
	if m.showFilter {
		switch msg.String() {
		case "esc", "/":
			m.showFilter = false
			return nil
		}
		changed, cmd := m.filter.update(msg)
		if changed {
			m.applyFilter()
			if m.filter.active() {
				m.status = fmt.Sprintf("filter: %d villas", len(m.matched))
			} else {
				m.status = "filter cleared"
			}
		}
		return cmd
	}
	if m.showTable {
		switch msg.String() {
		case "esc", "a":
			m.showTable = false
			return nil
		case "enter":
			if i := m.tbl.Cursor(); i >= 0 && i < len(m.tblIdx) {
				m.focusPlot(m.tblIdx[i])
			}
			m.showTable = false
			return nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "+", "=":
		if m.cv != nil && !m.cv.ZoomIn(zoomStep) && !m.cv.CanZoomIn() {
			m.status = "zoom: at maximum"
		}
	case "-", "_":
		if m.cv != nil && !m.cv.ZoomOut(zoomStep) && !m.cv.CanZoomOut() {
			m.status = "zoom: at minimum"
		}
	case "0":
		if m.cv != nil {
			m.cv.Reset()
			m.status = "view reset"
		}
	case "f":
		if m.cv != nil {
			m.cv.FitToView()
			m.status = fmt.Sprintf("fit: %.2fx", m.cv.Transform().Scale)
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.relayout()
	case "/":
		m.showFilter = true
		m.showTable = false
	case "a":
		m.showTable = true
		m.showFilter = false
		m.refreshVillaTable()
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "l":
		m.showLegend = !m.showLegend
	case "esc":
		if m.sticky {
			m.sticky = false
			m.active = -1
			m.status = "tooltip unpinned"
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.panBy(0, panStepY)
	case "down":
		m.panBy(0, -panStepY)
	case "left":
		m.panBy(panStepX, 0)
	case "right":
		m.panBy(-panStepX, 0)
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) handlePaste(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return nil
	case "enter":
		src := strings.TrimSpace(m.ta.Value())
		if src == "" {
			m.status = "paste: empty"
			return nil
		}
		rows, err := plan.DecodeRows([]byte(src))
		if err != nil {
			m.status = "rows error: " + err.Error()
			return nil
		}
		m.rowsPath = ""
		m.setRows(rows)
		m.status = fmt.Sprintf("pasted %d villa rows", len(rows))
		m.pasteMode = false
		m.ta.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return cmd
}

// panBy moves the view through the drag channel so that arrow keys obey the
// same clamp as the mouse.
func (m *Model) panBy(dx, dy float64) {
	if m.cv == nil || m.cv.Dragging() {
		return
	}
	c := m.cv.Viewport().Center()
	m.cv.DragStart(c)
	m.cv.DragEnd(c.Add(canvas.Pt(dx, dy)))
	m.refreshHover()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ox, oy, w, h := m.mapRect()
	cx, cy := msg.X-ox, msg.Y-oy
	inMap := cx >= 0 && cx < w && cy >= 0 && cy < h
	if m.showTable || m.showFilter || m.pasteMode {
		return
	}
	if !inMap {
		m.hovering = false
		if !m.sticky {
			m.active = -1
		}
		// leaving the map ends a gesture where it stands
		if m.cv != nil && (m.cv.Dragging() || m.cv.Pinching()) {
			m.cv.DragCancel()
			m.cv.PinchEnd()
		}
		if m.showSidebar {
			m.l, _ = m.l.Update(msg)
		}
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	if m.cv == nil {
		return
	}
	pt := cellPoint(cx, cy)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.cv.DragStart(pt)
		case tea.MouseButtonRight:
			m.pinchX, m.pinchY, m.pinchLast = cx, cy, cy
			m.cv.PinchStart(pt)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			dy := 1.0
			if msg.Button == tea.MouseButtonWheelUp {
				dy = -1
			}
			m.cv.Wheel(canvas.WheelEvent{DeltaY: dy, Pos: pt, Accelerate: msg.Ctrl || msg.Alt})
		}
	case tea.MouseActionMotion:
		switch {
		case msg.Button == tea.MouseButtonRight && m.cv.Pinching():
			ratio := math.Exp(-float64(cy-m.pinchLast) * pinchPerRow)
			m.pinchLast = cy
			m.cv.PinchUpdate(ratio, cellPoint(m.pinchX, m.pinchY))
		case m.cv.Dragging():
			m.cv.DragMove(pt)
		}
	case tea.MouseActionRelease:
		if m.cv.Pinching() {
			m.cv.PinchEnd()
			break
		}
		if m.cv.Dragging() && m.cv.DragEnd(pt) {
			m.tap(cx, cy)
		}
	}
	m.refreshHover()
}

// tap pins the tooltip of the plot under the cell, or unpins it.
func (m *Model) tap(cx, cy int) {
	i := m.hitCell(cx, cy)
	if i < 0 || (m.sticky && m.active == i) {
		m.sticky = false
		m.active = -1
		return
	}
	m.active, m.sticky = i, true
	m.stickyX, m.stickyY = cx, cy
	m.status = "pinned: " + plan.Title(m.plots[i])
}

// refreshHover re-runs the hit test after the pointer or the transform moved.
func (m *Model) refreshHover() {
	if m.cv == nil || !m.hovering {
		return
	}
	pt := cellPoint(m.hoverCellX, m.hoverCellY)
	m.hoverPlan = m.toPlan(m.cv.Transform().ScreenToContent(pt, m.cv.Viewport()))
	if !m.sticky {
		m.active = m.pl.Hit(m.hoverPlan)
	}
}
