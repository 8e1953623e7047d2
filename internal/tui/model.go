package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"masterplan/internal/canvas"
	"masterplan/internal/geom"
	"masterplan/internal/plan"
)

// zoomWatch receives canvas zoom notifications. It is shared by every copy
// of the Model.
type zoomWatch struct {
	scale float64
	dirty bool
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showLegend  bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	opts     canvas.Options
	pl       geom.Plan
	rows     []plan.Row
	rowsPath string
	plots    []plan.Plot

	// Transform over the plan, created once the map size is known
	cv   *canvas.Canvas
	base float64 // plan units to content pixels at scale 1
	zoom *zoomWatch

	// last rendered map size in cells
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverPlan  geom.Point
	active     int // index into plots, -1 when none
	sticky     bool
	stickyX    int
	stickyY    int

	// right-drag pinch, anchored at the press cell
	pinchX    int
	pinchY    int
	pinchLast int

	// filter panel
	showFilter bool
	filter     filterPanel
	matched    map[string]bool

	// villa table
	showTable bool
	tbl       table.Model
	tblIdx    []int
}

func New(opts canvas.Options) Model {
	m := Model{
		helpVisible: true,
		showLegend:  true,
		status:      "masterplan ready",
		opts:        opts,
		zoom:        &zoomWatch{scale: opts.InitialZoom},
		active:      -1,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Plans"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = `Paste villa rows JSON ({"rows":[...]} or [...]). Press Enter to apply; Esc to cancel.`
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// villa table setup
	m.tbl = table.New(table.WithColumns(villaColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.filter = newFilterPanel()
	m.refreshDir()
	return m
}

// NewWithPaths preloads a plan and villa rows at launch. Either path may be
// empty.
func NewWithPaths(opts canvas.Options, planPath, rowsPath string) Model {
	m := New(opts)
	if rowsPath != "" {
		m.loadRows(rowsPath)
	}
	if planPath != "" {
		m.loadPath(planPath)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Canvas exposes the current transform engine, nil until a plan is shown.
func (m Model) Canvas() *canvas.Canvas { return m.cv }
