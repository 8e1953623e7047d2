// Package plan joins plan shapes with villa sales rows and derives what the
// viewer shows for each plot: kind, availability, colour, tooltip and
// filter membership.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Availability values after normalisation.
const (
	Available = "Available"
	Hold      = "Hold"
	Blocked   = "Blocked"
	Sold      = "Sold"
)

// Villa types.
const (
	Standard = "Standard"
	Premium  = "Premium"
)

// premiumPlotSize is the plot size in square yards above which a villa is
// Premium.
const premiumPlotSize = 500

// Text decodes from either a JSON string or a JSON number.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

// Float parses the text, treating anything unparsable as zero.
func (t Text) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Construction is the build progress of one villa.
type Construction struct {
	CompletionPercentage int    `json:"completionPercentage"`
	CurrentStage         string `json:"currentStage"`
	StageStatus          string `json:"stageStatus"` // not_started, in_progress or completed
	CurrentStageIndex    int    `json:"currentStageIndex"`
}

// Row is one villa's sales record.
type Row struct {
	ID           string        `json:"id"`
	Facing       string        `json:"facing"`
	Sqft         Text          `json:"sqft"`
	PlotSize     Text          `json:"plotSize"`
	Availability string        `json:"availability"`
	Type         string        `json:"type"`
	Construction *Construction `json:"construction"`
}

// Key is the villa key of the row id.
func (r Row) Key() string { return ExtractVillaKey(r.ID) }

// VillaType classifies the row by plot size.
func (r Row) VillaType() string {
	if r.PlotSize.Float() > premiumPlotSize {
		return Premium
	}
	return Standard
}

// NormalizeAvailability maps sheet status codes and loose spellings onto
// the availability constants. Unknown values are Available.
func NormalizeAvailability(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2", "sold":
		return Sold
	case "1", "blocked":
		return Blocked
	case "hold", "on hold":
		return Hold
	}
	return Available
}

// LoadRows reads rows from a JSON file holding either {"rows": [...]} or a
// bare array. Availability is normalised and a missing type is derived from
// the plot size.
func LoadRows(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := DecodeRows(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// DecodeRows is LoadRows without the file.
func DecodeRows(data []byte) ([]Row, error) {
	data = bytes.TrimSpace(data)
	var rows []Row
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Rows  []Row  `json:"rows"`
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Error != "" {
			return nil, fmt.Errorf("rows: %s", wrapped.Error)
		}
		rows = wrapped.Rows
	}
	out := rows[:0]
	for _, r := range rows {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			continue
		}
		r.Availability = NormalizeAvailability(r.Availability)
		if r.Type == "" {
			r.Type = r.VillaType()
		}
		out = append(out, r)
	}
	return out, nil
}

var (
	villaKeyRe  = regexp.MustCompile(`[0-9]+[A-Z]?`)
	commonRe    = regexp.MustCompile(`CANAL|LANDSCAPE|CLUBHOUSE`)
	clubhouseRe = regexp.MustCompile(`(?i)CLUBHOUSE`)
	canalRe     = regexp.MustCompile(`(?i)CANAL|LANDSCAPE`)
)

// ExtractVillaKey returns the villa number of a plot or row id, such as
// "121" for "V_121" or "12A" for "villa-12a". Common areas have no key and
// yield "".
func ExtractVillaKey(id string) string {
	s := strings.ToUpper(id)
	if commonRe.MatchString(s) {
		return ""
	}
	return villaKeyRe.FindString(s)
}
