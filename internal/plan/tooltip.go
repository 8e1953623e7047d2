package plan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Line is one label/value row of a tooltip. An empty Label marks a line
// that spans the whole tooltip.
type Line struct {
	Label string
	Value string
	Color lipgloss.Color // empty for the default foreground
}

var (
	colorGreen   = lipgloss.Color("#34D399")
	colorAmber   = lipgloss.Color("#FBBF24")
	colorBlue    = lipgloss.Color("#60A5FA")
	colorGray    = lipgloss.Color("#9CA3AF")
	colorDimGray = lipgloss.Color("#6B7280")
	colorPremium = lipgloss.Color("#D8B4FE")
)

// StatusColor is the text colour of an availability value.
func StatusColor(availability string) lipgloss.Color {
	switch availability {
	case Available:
		return lipgloss.Color("#6BE1E1")
	case Blocked, Hold:
		return lipgloss.Color("#FCF38A")
	case Sold:
		return lipgloss.Color("#F87171")
	}
	return lipgloss.Color("#E5E7EB")
}

// ConstructionColor buckets a completion percentage.
func ConstructionColor(pct int) lipgloss.Color {
	switch {
	case pct >= 90:
		return colorGreen
	case pct >= 60:
		return colorAmber
	case pct >= 30:
		return colorBlue
	case pct > 0:
		return colorGray
	}
	return colorDimGray
}

var stagePrefix = regexp.MustCompile(`^\d+\s+`)

// SimplifyStage drops the ordinal prefix of a stage name, so
// "01 Ground Levelling" reads "Ground Levelling".
func SimplifyStage(stage string) string {
	if stage == "" {
		return "Not Started"
	}
	return stagePrefix.ReplaceAllString(stage, "")
}

// ProgressBar renders pct as a bar of width cells. Any progress shows at
// least one cell.
func ProgressBar(pct, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	if pct > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// TooltipLines describes a plot for the hover tooltip, below its Title.
func TooltipLines(p Plot) []Line {
	if p.Kind != Villa {
		return []Line{{Value: "This is a common area.", Color: colorGray}}
	}
	lines := []Line{{Label: "Status", Value: p.Availability, Color: StatusColor(p.Availability)}}
	r := p.Row
	if r == nil {
		return append(lines, Line{Value: "No sales data.", Color: colorGray})
	}
	if c := r.Construction; c != nil {
		pctColor := colorGreen
		if c.StageStatus == "in_progress" {
			pctColor = colorAmber
		}
		lines = append(lines,
			Line{Label: "Construction", Value: strconv.Itoa(c.CompletionPercentage) + "%", Color: pctColor},
			Line{Value: ProgressBar(c.CompletionPercentage, 20), Color: ConstructionColor(c.CompletionPercentage)},
		)
		switch {
		case c.CompletionPercentage >= 100:
			lines = append(lines, Line{Value: "✓ Fully Complete", Color: colorGreen})
		case c.StageStatus == "in_progress":
			lines = append(lines, Line{Label: "In Progress", Value: SimplifyStage(c.CurrentStage), Color: colorAmber})
		case c.StageStatus == "completed" && c.CurrentStage != "":
			lines = append(lines, Line{Label: "Stage Completed", Value: SimplifyStage(c.CurrentStage), Color: colorGreen})
		default:
			lines = append(lines, Line{Value: "Not Started", Color: colorDimGray})
		}
	}
	if r.Type != "" {
		l := Line{Label: "Type", Value: r.Type}
		if strings.Contains(strings.ToLower(r.Type), "premium") {
			l.Color = colorPremium
		}
		lines = append(lines, l)
	}
	if r.Facing != "" {
		lines = append(lines, Line{Label: "Facing", Value: r.Facing})
	}
	if r.Sqft != "" {
		lines = append(lines, Line{Label: "Sq. Ft", Value: string(r.Sqft)})
	}
	if r.PlotSize != "" {
		lines = append(lines, Line{Label: "Plot Size", Value: string(r.PlotSize) + " SqYds"})
	}
	return lines
}
