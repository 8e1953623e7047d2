package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"masterplan/internal/plan"
)

const (
	groupStatus = "Status"
	groupType   = "Type"
	groupFacing = "Facing"
)

type filterItem struct {
	group, value string
	on           bool
}

func (f filterItem) Title() string {
	box := "[ ]"
	if f.on {
		box = "[x]"
	}
	return box + " " + f.group + " · " + f.value
}
func (f filterItem) Description() string { return f.group }
func (f filterItem) FilterValue() string { return f.group + " " + f.value }

const (
	focusList = iota
	focusSqft
	focusPlot
	focusCount
)

// filterPanel edits plan.Criteria: a checklist for the categorical fields and
// two "min-max" inputs for the numeric ones.
type filterPanel struct {
	list  list.Model
	sqft  textinput.Model
	plot  textinput.Model
	focus int
	opts  plan.Options
	crit  plan.Criteria
	err   string
}

func newFilterPanel() filterPanel {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	l := list.New(nil, d, 34, 12)
	l.Title = "Filters"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	sq := textinput.New()
	sq.Prompt = "Sq. Ft  "
	sq.Placeholder = "min-max"
	pl := textinput.New()
	pl.Prompt = "SqYds   "
	pl.Placeholder = "min-max"
	return filterPanel{list: l, sqft: sq, plot: pl}
}

// reset replaces the choices and clears every criterion.
func (f *filterPanel) reset(opts plan.Options) {
	f.opts = opts
	f.crit = plan.Defaults(opts)
	f.err = ""
	f.sync()
}

// sync rebuilds the checklist and inputs from the criteria.
func (f *filterPanel) sync() {
	var items []list.Item
	add := func(group string, values, picked []string) {
		for _, v := range values {
			items = append(items, filterItem{group: group, value: v, on: slices.Contains(picked, v)})
		}
	}
	add(groupStatus, f.opts.Availability, f.crit.Availability)
	add(groupType, f.opts.Types, f.crit.Types)
	add(groupFacing, f.opts.Facing, f.crit.Facing)
	f.list.SetItems(items)
	f.sqft.SetValue(formatSpan(f.crit.Sqft))
	f.plot.SetValue(formatSpan(f.crit.PlotSize))
}

func (f filterPanel) active() bool { return f.crit.Active(f.opts) }

func (f *filterPanel) setFocus(n int) {
	f.focus = (n + focusCount) % focusCount
	f.sqft.Blur()
	f.plot.Blur()
	switch f.focus {
	case focusSqft:
		f.sqft.Focus()
	case focusPlot:
		f.plot.Focus()
	}
}

// update handles a key for the panel and reports whether the criteria
// changed.
func (f *filterPanel) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "tab":
		f.setFocus(f.focus + 1)
		return false, nil
	case "shift+tab":
		f.setFocus(f.focus - 1)
		return false, nil
	case "ctrl+r":
		f.crit = plan.Defaults(f.opts)
		f.err = ""
		f.sync()
		return true, nil
	}
	switch f.focus {
	case focusList:
		if k := msg.String(); k == "enter" || k == " " {
			return f.toggleSelected(), nil
		}
		var cmd tea.Cmd
		f.list, cmd = f.list.Update(msg)
		return false, cmd
	case focusSqft, focusPlot:
		in := &f.sqft
		if f.focus == focusPlot {
			in = &f.plot
		}
		if msg.String() == "enter" {
			s, err := parseSpan(in.Value())
			if err != nil {
				f.err = err.Error()
				return false, nil
			}
			f.err = ""
			if f.focus == focusSqft {
				f.crit.Sqft = s
			} else {
				f.crit.PlotSize = s
			}
			return true, nil
		}
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return false, cmd
	}
	return false, nil
}

func (f *filterPanel) toggleSelected() bool {
	it, ok := f.list.SelectedItem().(filterItem)
	if !ok {
		return false
	}
	switch it.group {
	case groupStatus:
		f.crit.Availability = plan.Toggle(f.crit.Availability, it.value)
	case groupType:
		f.crit.Types = plan.Toggle(f.crit.Types, it.value)
	case groupFacing:
		f.crit.Facing = plan.Toggle(f.crit.Facing, it.value)
	}
	it.on = !it.on
	f.list.SetItem(f.list.Index(), it)
	return true
}

func (f filterPanel) view(matched int) string {
	var b strings.Builder
	b.WriteString(f.list.View())
	b.WriteString("\n")
	b.WriteString(f.sqft.View())
	b.WriteString("\n")
	b.WriteString(f.plot.View())
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(plan.ColorSold).Render(f.err))
		b.WriteString("\n")
	}
	state := "showing all villas"
	if f.active() {
		state = fmt.Sprintf("%d villas match", matched)
	}
	b.WriteString(dimStyle.Render(state + "  tab focus · enter toggle · ctrl+r reset"))
	return boxStyle.Render(b.String())
}

// parseSpan reads "min-max". An empty string clears the span.
func parseSpan(s string) (plan.Span, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return plan.Span{}, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return plan.Span{}, fmt.Errorf("range %q: want min-max", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return plan.Span{}, fmt.Errorf("range %q: %w", s, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return plan.Span{}, fmt.Errorf("range %q: %w", s, err)
	}
	if a > z {
		a, z = z, a
	}
	return plan.Span{Min: a, Max: z}, nil
}

func formatSpan(s plan.Span) string {
	if s.IsZero() {
		return ""
	}
	return strconv.FormatFloat(s.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(s.Max, 'f', -1, 64)
}
