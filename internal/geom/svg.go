package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const defaultViewBox = "0 0 1000 1000"

// ParseSVG converts the rect, polygon and path elements of an SVG document
// into plan shapes, in document order. Elements without an id get one of
// Rect-n, Poly-n or Path-n from a single counter. Degenerate shapes are
// dropped.
func ParseSVG(r io.Reader) (Plan, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	var (
		pl      Plan
		sawRoot bool
		autoID  = 1
	)
	nextID := func(prefix string) string {
		id := prefix + "-" + strconv.Itoa(autoID)
		autoID++
		return id
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Plan{}, fmt.Errorf("svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		attr := func(name string) (string, bool) {
			for _, a := range se.Attr {
				if a.Name.Local == name {
					return a.Value, true
				}
			}
			return "", false
		}
		id, hasID := attr("id")
		var pg Polygon
		switch strings.ToLower(se.Name.Local) {
		case "svg":
			if sawRoot {
				continue
			}
			sawRoot = true
			vb, ok := attr("viewBox")
			if !ok {
				vb = defaultViewBox
			}
			if pl.ViewBox, err = ParseViewBox(vb); err != nil {
				return Plan{}, fmt.Errorf("svg: %w", err)
			}
			continue
		case "rect":
			if !hasID {
				id = nextID("Rect")
			}
			pg = rectPolygon(attr)
		case "path":
			if !hasID {
				id = nextID("Path")
			}
			d, _ := attr("d")
			pg = PathPolygon(d)
		case "polygon":
			if !hasID {
				id = nextID("Poly")
			}
			pts, _ := attr("points")
			pg, _ = ParsePoints(pts)
		default:
			continue
		}
		if id == "" || len(pg) < 3 {
			continue
		}
		pl.Shapes = append(pl.Shapes, Shape{ID: id, Polygon: pg})
	}
	if !sawRoot {
		return Plan{}, errors.New("svg: no <svg> element")
	}
	return pl, nil
}

func rectPolygon(attr func(string) (string, bool)) Polygon {
	num := func(name string, def float64) float64 {
		s, ok := attr(name)
		if !ok {
			return def
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return def
		}
		return v
	}
	x, y := num("x", 0), num("y", 0)
	w, h := num("width", -1), num("height", -1)
	if !(w > 0 && h > 0) {
		return nil
	}
	return Polygon{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
