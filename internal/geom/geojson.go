package geom

import (
	"encoding/json"
	"errors"
	"strconv"
)

// ParseGeoJSON reads Polygon and MultiPolygon features from a GeoJSON
// document. Only the outer ring of each polygon is kept. Latitude grows
// upward, so Y is negated to keep north at the top of the screen. Each part
// of a MultiPolygon becomes a shape sharing the feature id. The view box is
// the bounding box of all shapes.
func ParseGeoJSON(data []byte) (Plan, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Plan{}, err
	}
	var pl Plan
	autoID := 1

	parsePoint := func(v any) (pt Point, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return Point{X: lon, Y: -lat}, true
			}
		}
		return Point{}, false
	}
	parseRing := func(v any) (ring Polygon, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		// GeoJSON rings repeat the first vertex at the end
		if n := len(ring); n > 1 && ring[0] == ring[n-1] {
			ring = ring[:n-1]
		}
		return ring, true
	}
	outer := func(v any) (Polygon, bool) {
		arr, ok := v.([]any)
		if !ok || len(arr) == 0 {
			return nil, false
		}
		return parseRing(arr[0])
	}
	addPoly := func(id string, pg Polygon) {
		if len(pg) >= 3 {
			pl.Shapes = append(pl.Shapes, Shape{ID: id, Polygon: pg})
		}
	}
	walkGeom := func(id string, g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if pg, ok := outer(g["coordinates"]); ok {
				addPoly(id, pg)
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if pg, ok := outer(el); ok {
						addPoly(id, pg)
					}
				}
			}
		}
	}
	walkFeature := func(fm map[string]any) {
		id := featureID(fm)
		if id == "" {
			id = "Feature-" + strconv.Itoa(autoID)
			autoID++
		}
		if g, ok := fm["geometry"].(map[string]any); ok {
			walkGeom(id, g)
		}
	}

	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					walkFeature(fm)
				}
			}
		}
	case "Polygon", "MultiPolygon":
		walkGeom("Feature-1", raw)
	default:
		return Plan{}, errors.New("unsupported geojson type: " + t)
	}
	if len(pl.Shapes) == 0 {
		return Plan{}, errors.New("no polygons found in geojson")
	}
	pl.ViewBox = pl.Bounds()
	return pl, nil
}

// featureID prefers properties.id over the feature's own id. Numeric ids are
// formatted without a fraction.
func featureID(fm map[string]any) string {
	str := func(v any) string {
		switch v := v.(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return ""
	}
	if props, ok := fm["properties"].(map[string]any); ok {
		if id := str(props["id"]); id != "" {
			return id
		}
	}
	return str(fm["id"])
}
