package plan

import (
	"slices"
	"sort"
)

// Span is an inclusive numeric range. The zero Span is unset.
type Span struct {
	Min float64
	Max float64
}

func (s Span) IsZero() bool { return s == Span{} }

func (s Span) Contains(v float64) bool { return v >= s.Min && v <= s.Max }

// Options are the values a filter can choose from, gathered from the rows.
type Options struct {
	Availability []string
	Facing       []string
	Types        []string
	Sqft         Span
	PlotSize     Span
}

// ExtractOptions collects the distinct availability, facing and type values
// of villa rows, and the sqft and plot size extremes over positive values.
func ExtractOptions(rows []Row) Options {
	avail, facing, types := map[string]bool{}, map[string]bool{}, map[string]bool{}
	var o Options
	var haveSqft, havePlot bool
	for _, r := range rows {
		if r.Key() == "" {
			continue
		}
		if r.Availability != "" {
			avail[r.Availability] = true
		}
		if r.Facing != "" {
			facing[r.Facing] = true
		}
		if ps := r.PlotSize.Float(); ps > 0 {
			types[r.VillaType()] = true
			o.PlotSize, havePlot = widen(o.PlotSize, ps, havePlot), true
		}
		if sq := r.Sqft.Float(); sq > 0 {
			o.Sqft, haveSqft = widen(o.Sqft, sq, haveSqft), true
		}
	}
	o.Availability = sortedKeys(avail)
	o.Facing = sortedKeys(facing)
	o.Types = sortedKeys(types)
	return o
}

func widen(s Span, v float64, seen bool) Span {
	if !seen {
		return Span{Min: v, Max: v}
	}
	return Span{Min: min(s.Min, v), Max: max(s.Max, v)}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Criteria selects villas. Empty lists and zero spans do not constrain.
type Criteria struct {
	Availability []string
	Types        []string
	Facing       []string
	Sqft         Span
	PlotSize     Span
}

// Defaults is the criteria that selects every villa under opts.
func Defaults(opts Options) Criteria {
	return Criteria{Sqft: opts.Sqft, PlotSize: opts.PlotSize}
}

// Active reports whether c narrows the selection relative to opts.
func (c Criteria) Active(opts Options) bool {
	if len(c.Availability) > 0 || len(c.Types) > 0 || len(c.Facing) > 0 {
		return true
	}
	if !c.Sqft.IsZero() && c.Sqft != opts.Sqft {
		return true
	}
	return !c.PlotSize.IsZero() && c.PlotSize != opts.PlotSize
}

// Match reports whether the villa row r passes c. Rows without a villa key
// never match.
func (c Criteria) Match(r Row) bool {
	if r.Key() == "" {
		return false
	}
	if len(c.Availability) > 0 && !slices.Contains(c.Availability, r.Availability) {
		return false
	}
	if len(c.Types) > 0 && !slices.Contains(c.Types, r.VillaType()) {
		return false
	}
	if len(c.Facing) > 0 && !slices.Contains(c.Facing, r.Facing) {
		return false
	}
	if !c.Sqft.IsZero() && !c.Sqft.Contains(r.Sqft.Float()) {
		return false
	}
	if !c.PlotSize.IsZero() && !c.PlotSize.Contains(r.PlotSize.Float()) {
		return false
	}
	return true
}

// Apply returns the ids of villa plots whose row matches c.
func Apply(plots []Plot, c Criteria) map[string]bool {
	ids := map[string]bool{}
	for _, p := range plots {
		if p.Kind == Villa && p.Row != nil && c.Match(*p.Row) {
			ids[p.ID] = true
		}
	}
	return ids
}

// Toggle adds v to list or removes it when present.
func Toggle(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}
