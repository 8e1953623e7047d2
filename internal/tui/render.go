package tui

import (
	"math"
	"strings"

	"gioui.org/f32"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"masterplan/internal/canvas"
	"masterplan/internal/plan"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	// nominal terminal cell size, used to express tooltip spacing in pixels
	cellPxW = 8
	cellPxH = 16

	tipMarginPx = 15
)

// mapRect is the map area in screen cells. It must match the View layout.
func (m Model) mapRect() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	w = max(10, contentWidth-x)
	return x, headerHeight, w, contentHeight
}

// relayout recomputes widget sizes after a resize or a sidebar toggle and
// hands the new map size to the canvas.
func (m *Model) relayout() {
	_, _, w, h := m.mapRect()
	m.mapW, m.mapH = w, h
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, h-2)
	}
	m.filter.list.SetSize(34, max(4, h-8))
	m.tbl.SetHeight(min(h-4, 20))
	m.ta.SetWidth(w)
	m.ta.SetHeight(min(h, 12))
	m.ensureCanvas()
}

// cellPoint is the micro-pixel at the centre of a map cell.
func cellPoint(cx, cy int) canvas.Point {
	return canvas.Pt(float64(cx*2+1), float64(cy*4+2))
}

// hitCell returns the plot under a map cell, or -1.
func (m Model) hitCell(cx, cy int) int {
	if m.cv == nil {
		return -1
	}
	c := m.cv.Transform().ScreenToContent(cellPoint(cx, cy), m.cv.Viewport())
	return m.pl.Hit(m.toPlan(c))
}

// activePlot is the pinned plot, or else the hovered one.
func (m Model) activePlot() *plan.Plot {
	if m.active < 0 || m.active >= len(m.plots) {
		return nil
	}
	return &m.plots[m.active]
}

func (m Model) renderMap(w, h int) string {
	if m.cv == nil {
		msg := "no plan loaded  (tab to browse, or pass a plan file)"
		if len(m.pl.Shapes) > 0 {
			msg = "plan has no drawable area"
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	}
	br := newBrailleBuf(w, h)
	aff := m.cv.Transform().Affine(m.cv.Viewport())
	vw, vh := float64(w*2), float64(h*4)

	lit := plan.HighlightIDs(m.activePlot(), m.plots)
	for id := range m.matched {
		lit[id] = true
	}

	rings := make([][][2]float64, len(m.plots))
	for i, p := range m.plots {
		ring := make([][2]float64, 0, len(p.Polygon))
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, v := range p.Polygon {
			c := m.toContent(v)
			s := aff.Transform(f32.Pt(float32(c.X), float32(c.Y)))
			x, y := float64(s.X), float64(s.Y)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			ring = append(ring, [2]float64{x, y})
		}
		if maxX < 0 || maxY < 0 || minX >= vw || minY >= vh {
			continue
		}
		rings[i] = ring
	}
	// fills first so that edges stay visible on top
	for i, p := range m.plots {
		if rings[i] != nil && lit[p.ID] {
			br.fillRing(rings[i], p.Color)
		}
	}
	for i, p := range m.plots {
		ring := rings[i]
		if ring == nil {
			continue
		}
		edge := outlineFg
		if lit[p.ID] {
			edge = litEdgeFg
		}
		for j := range ring {
			br.drawSegment(ring[j], ring[(j+1)%len(ring)], edge)
		}
	}
	return strings.Join(br.render(baseFg), "\n")
}

// tooltipOffset is the pointer-to-tooltip gap in pixels. It shrinks as the
// plan is magnified.
func tooltipOffset(zoom float64) float64 {
	return max(15, min(40, 20/max(0.5, zoom)))
}

// placeTooltip positions a tipW x tipH box (cells) next to the pointer cell
// inside an areaW x areaH map. The box sits below-right of the pointer,
// flips to the other side of any edge it would cross and is then clamped to
// the margin.
func placeTooltip(cx, cy, tipW, tipH, areaW, areaH int, zoom float64) (int, int) {
	off := tooltipOffset(zoom)
	x := place(float64(cx*cellPxW), off, float64(tipW*cellPxW), float64(areaW*cellPxW))
	y := place(float64(cy*cellPxH), off, float64(tipH*cellPxH), float64(areaH*cellPxH))
	tx := min(int(x)/cellPxW, areaW-tipW)
	ty := min(int(y)/cellPxH, areaH-tipH)
	return max(0, tx), max(0, ty)
}

func place(p, off, size, area float64) float64 {
	v := p + off
	if v+size > area-tipMarginPx {
		v = p - off - size
	}
	return max(tipMarginPx, min(v, area-size-tipMarginPx))
}

func (m Model) tooltipView(p plan.Plot) string {
	var b strings.Builder
	b.WriteString(boldStyle.Foreground(p.Color).Render(plan.Title(p)))
	for _, l := range plan.TooltipLines(p) {
		b.WriteString("\n")
		st := lipgloss.NewStyle()
		if l.Color != "" {
			st = st.Foreground(l.Color)
		}
		if l.Label == "" {
			b.WriteString(st.Render(l.Value))
			continue
		}
		b.WriteString(dimStyle.Render(l.Label+": ") + st.Render(l.Value))
	}
	return tipStyle.Render(b.String())
}

func legendView() string {
	parts := make([]string, 0, len(plan.Legend()))
	for _, it := range plan.Legend() {
		parts = append(parts, lipgloss.NewStyle().Foreground(it.Color).Render("■")+" "+it.Label)
	}
	return tipStyle.Render(strings.Join(parts, "  "))
}

// textModel lets rendered strings take part in overlay composition.
type textModel string

func (t textModel) Init() tea.Cmd                       { return nil }
func (t textModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return t, nil }
func (t textModel) View() string                        { return string(t) }

func compose(fg, bg string, xPos, yPos overlay.Position, xOff, yOff int) string {
	var o tea.Model = overlay.New(textModel(fg), textModel(bg), xPos, yPos, xOff, yOff)
	return o.View()
}

// decorateMap draws the tooltip and legend over the rendered map.
func (m Model) decorateMap(mapStr string, w, h int) string {
	if m.showLegend && m.cv != nil {
		mapStr = compose(legendView(), mapStr, overlay.Left, overlay.Bottom, 1, 0)
	}
	p := m.activePlot()
	if p == nil || (!m.hovering && !m.sticky) {
		return mapStr
	}
	cx, cy := m.hoverCellX, m.hoverCellY
	if m.sticky {
		cx, cy = m.stickyX, m.stickyY
	}
	tip := m.tooltipView(*p)
	x, y := placeTooltip(cx, cy, lipgloss.Width(tip), lipgloss.Height(tip), w, h, m.zoom.scale)
	return compose(tip, mapStr, overlay.Left, overlay.Top, x, y)
}
