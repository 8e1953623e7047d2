package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// plotsFile is the converted plan format: a view box and one points string
// per plot.
type plotsFile struct {
	ViewBox string      `json:"viewBox"`
	Plots   []plotEntry `json:"plots"`
}

type plotEntry struct {
	ID     string `json:"id"`
	Points string `json:"points"`
}

// Supported reports whether LoadPlan understands the file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".geojson", ".svg":
		return true
	}
	return false
}

// LoadPlan reads a plots .json file, a .geojson file or an .svg drawing.
func LoadPlan(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, err
	}
	defer f.Close()

	var pl Plan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		pl, err = ParseSVG(f)
	case ".json", ".geojson":
		var data []byte
		if data, err = io.ReadAll(f); err != nil {
			return Plan{}, err
		}
		if ext == ".geojson" || isGeoJSON(data) {
			pl, err = ParseGeoJSON(data)
		} else {
			pl, err = DecodePlan(data)
		}
	default:
		return Plan{}, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if pl.ViewBox.Empty() {
		return Plan{}, fmt.Errorf("%s: empty view box", filepath.Base(path))
	}
	return pl, nil
}

func isGeoJSON(data []byte) bool {
	var sniff struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(data, &sniff) == nil && sniff.Type != ""
}

// DecodePlan parses the plots JSON format.
func DecodePlan(data []byte) (Plan, error) {
	var pf plotsFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return Plan{}, err
	}
	vb := pf.ViewBox
	if strings.TrimSpace(vb) == "" {
		vb = defaultViewBox
	}
	box, err := ParseViewBox(vb)
	if err != nil {
		return Plan{}, err
	}
	pl := Plan{ViewBox: box}
	for i, p := range pf.Plots {
		if p.ID == "" {
			return Plan{}, fmt.Errorf("plot %d: missing id", i)
		}
		pg, err := ParsePoints(p.Points)
		if err != nil {
			return Plan{}, fmt.Errorf("plot %s: %w", p.ID, err)
		}
		if len(pg) < 3 {
			continue
		}
		pl.Shapes = append(pl.Shapes, Shape{ID: p.ID, Polygon: pg})
	}
	if len(pl.Shapes) == 0 {
		return Plan{}, errors.New("no plots found")
	}
	return pl, nil
}

// EncodePlan writes pl in the plots JSON format.
func EncodePlan(w io.Writer, pl Plan) error {
	pf := plotsFile{
		ViewBox: fmt.Sprintf("%g %g %g %g", pl.ViewBox.MinX, pl.ViewBox.MinY, pl.ViewBox.Width(), pl.ViewBox.Height()),
		Plots:   make([]plotEntry, 0, len(pl.Shapes)),
	}
	for _, s := range pl.Shapes {
		pf.Plots = append(pf.Plots, plotEntry{ID: s.ID, Points: FormatPoints(s.Polygon)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pf)
}
