package tui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"masterplan/internal/canvas"
	"masterplan/internal/geom"
	"masterplan/internal/plan"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no plan files in current directory"
	}
}

// loadPath loads a plan file and shows it with a fresh transform.
func (m *Model) loadPath(p string) {
	pl, err := geom.LoadPlan(p)
	if err != nil {
		log.Printf("load plan: %v", err)
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.setPlan(pl)
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  plots=%d", len(pl.Shapes))
	log.Printf("plan %s: %d shapes, viewBox %gx%g", p, len(pl.Shapes), pl.ViewBox.Width(), pl.ViewBox.Height())
}

// loadRows reads villa rows and re-derives the plots.
func (m *Model) loadRows(p string) {
	rows, err := plan.LoadRows(p)
	if err != nil {
		log.Printf("load rows: %v", err)
		m.status = "rows error: " + err.Error()
		return
	}
	m.rowsPath = p
	m.setRows(rows)
	m.status = fmt.Sprintf("rows: %d villas from %s", len(rows), filepath.Base(p))
}

func (m *Model) setPlan(pl geom.Plan) {
	m.pl = pl
	m.cv = nil
	m.active, m.sticky = -1, false
	m.derive()
	m.ensureCanvas()
}

func (m *Model) setRows(rows []plan.Row) {
	m.rows = rows
	m.filter.reset(plan.ExtractOptions(rows))
	m.derive()
}

// derive rebuilds plots, filter matches and the villa table from the
// current plan and rows.
func (m *Model) derive() {
	m.plots = plan.Derive(m.pl.Shapes, m.rows)
	if m.active >= len(m.plots) {
		m.active, m.sticky = -1, false
	}
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.filter.active() {
		m.matched = plan.Apply(m.plots, m.filter.crit)
	} else {
		m.matched = nil
	}
	m.refreshVillaTable()
}

// ensureCanvas creates the transform once both a plan and a map size exist,
// or feeds a new map size to the existing one. The plan's view box is fitted
// into the first viewport, so scale 1 shows the whole plan.
func (m *Model) ensureCanvas() {
	if len(m.pl.Shapes) == 0 || m.mapW <= 0 || m.mapH <= 0 {
		return
	}
	vp := m.viewport()
	if m.cv != nil {
		m.cv.SetViewport(vp)
		return
	}
	vb := m.pl.ViewBox
	base := min(vp.Width/vb.Width(), vp.Height/vb.Height())
	content := canvas.Size{Width: vb.Width() * base, Height: vb.Height() * base}
	cv, err := canvas.New(content, vp, m.opts)
	if err != nil {
		log.Printf("canvas: %v", err)
		m.status = "canvas error: " + err.Error()
		return
	}
	w := m.zoom
	w.scale = cv.Transform().Scale
	cv.OnZoomChange(func(s float64) {
		w.scale, w.dirty = s, true
	})
	m.cv, m.base = cv, base
}

// viewport is the map area in braille micro-pixels.
func (m Model) viewport() canvas.Size {
	return canvas.Size{Width: float64(m.mapW * 2), Height: float64(m.mapH * 4)}
}

// toContent maps a plan point to canvas content coordinates.
func (m Model) toContent(p geom.Point) canvas.Point {
	c := m.pl.ViewBox.Center()
	return canvas.Pt((p.X-c.X)*m.base, (p.Y-c.Y)*m.base)
}

// toPlan is the inverse of toContent.
func (m Model) toPlan(p canvas.Point) geom.Point {
	c := m.pl.ViewBox.Center()
	return geom.Point{X: p.X/m.base + c.X, Y: p.Y/m.base + c.Y}
}
