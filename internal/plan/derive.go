package plan

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"masterplan/internal/geom"
)

// Kind classifies a plot.
type Kind int

const (
	Villa Kind = iota
	Clubhouse
	Canal
)

func (k Kind) String() string {
	switch k {
	case Clubhouse:
		return "clubhouse"
	case Canal:
		return "canal"
	}
	return "villa"
}

// Highlight colours.
var (
	ColorAvailable = lipgloss.Color("#00FFFF")
	ColorHold      = lipgloss.Color("#FFFF00")
	ColorSold      = lipgloss.Color("#FF0000")
	ColorClubhouse = lipgloss.Color("#A855F7")
	ColorCanal     = lipgloss.Color("#3B82F6")
)

var availabilityColor = map[string]lipgloss.Color{
	Available: ColorAvailable,
	Hold:      ColorHold,
	Blocked:   ColorHold,
	Sold:      ColorSold,
}

// Plot is a shape enriched with its sales data.
type Plot struct {
	geom.Shape
	Kind         Kind
	Key          string
	Row          *Row // nil for common areas and villas missing from the sheet
	Availability string
	Color        lipgloss.Color
}

// Derive classifies every shape and attaches the row whose villa key matches.
// Villas without a row are Available.
func Derive(shapes []geom.Shape, rows []Row) []Plot {
	byKey := make(map[string]*Row, len(rows))
	for i := range rows {
		if k := rows[i].Key(); k != "" {
			byKey[k] = &rows[i]
		}
	}
	plots := make([]Plot, 0, len(shapes))
	for _, s := range shapes {
		p := Plot{Shape: s}
		switch {
		case clubhouseRe.MatchString(s.ID):
			p.Kind, p.Color = Clubhouse, ColorClubhouse
		case canalRe.MatchString(s.ID):
			p.Kind, p.Color = Canal, ColorCanal
		default:
			p.Kind = Villa
			p.Key = ExtractVillaKey(s.ID)
			p.Row = byKey[p.Key]
			p.Availability = Available
			if p.Row != nil && p.Row.Availability != "" {
				p.Availability = p.Row.Availability
			}
			p.Color = availabilityColor[p.Availability]
		}
		plots = append(plots, p)
	}
	return plots
}

// HighlightIDs is the set of plot ids lit while active is hovered. Hovering
// any canal lights every canal.
func HighlightIDs(active *Plot, plots []Plot) map[string]bool {
	ids := map[string]bool{}
	if active == nil {
		return ids
	}
	if active.Kind != Canal {
		ids[active.ID] = true
		return ids
	}
	for _, p := range plots {
		if p.Kind == Canal {
			ids[p.ID] = true
		}
	}
	return ids
}

// Title is the heading shown for a plot.
func Title(p Plot) string {
	switch p.Kind {
	case Clubhouse:
		return "Clubhouse"
	case Canal:
		return "Canal / Landscaping Zone"
	}
	if p.Key != "" {
		return "Villa No. " + p.Key
	}
	return strings.ReplaceAll(p.ID, "_", " ")
}

// LegendItem is one entry of the colour legend.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// Legend lists the highlight colours in display order.
func Legend() []LegendItem {
	return []LegendItem{
		{Label: "Available", Color: ColorAvailable},
		{Label: "On Hold", Color: ColorHold},
		{Label: "Sold", Color: ColorSold},
		{Label: "Clubhouse", Color: ColorClubhouse},
		{Label: "Landscaping", Color: ColorCanal},
	}
}
