package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"masterplan/internal/canvas"
	"masterplan/internal/plan"
)

func villaColumns() []table.Column {
	return []table.Column{
		{Title: "Villa", Width: 7},
		{Title: "Status", Width: 10},
		{Title: "Type", Width: 9},
		{Title: "Facing", Width: 8},
		{Title: "Sqft", Width: 7},
		{Title: "Plot", Width: 7},
		{Title: "Build%", Width: 7},
	}
}

// refreshVillaTable lists villa plots, only the matched ones while a filter
// is active. tblIdx maps table rows back to plot indices.
func (m *Model) refreshVillaTable() {
	rows := make([]table.Row, 0, len(m.plots))
	m.tblIdx = nil
	for i, p := range m.plots {
		if p.Kind != plan.Villa {
			continue
		}
		if m.matched != nil && !m.matched[p.ID] {
			continue
		}
		rows = append(rows, villaRow(p))
		m.tblIdx = append(m.tblIdx, i)
	}
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) {
		m.tbl.SetCursor(max(0, len(rows)-1))
	}
}

func villaRow(p plan.Plot) table.Row {
	key := p.Key
	if key == "" {
		key = p.ID
	}
	r := table.Row{key, p.Availability, "", "", "", "", ""}
	if p.Row == nil {
		return r
	}
	r[2] = p.Row.VillaType()
	r[3] = p.Row.Facing
	r[4] = number(p.Row.Sqft.Float())
	r[5] = number(p.Row.PlotSize.Float())
	if c := p.Row.Construction; c != nil {
		r[6] = fmt.Sprintf("%d%%", c.CompletionPercentage)
	}
	return r
}

func number(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// focusPlot centres the view on plot i and pins its tooltip there.
func (m *Model) focusPlot(i int) {
	if m.cv == nil || i < 0 || i >= len(m.plots) {
		return
	}
	c := m.toContent(m.plots[i].Polygon.Centroid())
	t := m.cv.Transform()
	m.cv.SetTransform(canvas.WithTranslate(-t.Scale*c.X, -t.Scale*c.Y))
	// the clamp may have refused part of the move, so pin where it landed
	sp := m.cv.Transform().ContentToScreen(c, m.cv.Viewport())
	m.active, m.sticky = i, true
	m.stickyX, m.stickyY = int(sp.X)/2, int(sp.Y)/4
	m.status = "villa: " + plan.Title(m.plots[i])
}
