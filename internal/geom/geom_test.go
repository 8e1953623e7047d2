package geom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	pg, err := ParsePoints(" 10,20 30,40\n50 , 60 ")
	require.NoError(t, err)
	assert.Equal(t, Polygon{{10, 20}, {30, 40}, {50, 60}}, pg)
	assert.Equal(t, "10,20 30,40 50,60", FormatPoints(pg))

	_, err = ParsePoints("1,2 3")
	assert.Error(t, err)
	_, err = ParsePoints("1,2 3,x")
	assert.Error(t, err)
	_, err = ParsePoints("1,2 3,NaN")
	assert.Error(t, err)

	pg, err = ParsePoints("")
	require.NoError(t, err)
	assert.Empty(t, pg)
}

func TestParseViewBox(t *testing.T) {
	b, err := ParseViewBox("-10 5 200 100")
	require.NoError(t, err)
	assert.Equal(t, BBox{MinX: -10, MinY: 5, MaxX: 190, MaxY: 105}, b)
	assert.Equal(t, 200.0, b.Width())
	assert.Equal(t, 100.0, b.Height())

	_, err = ParseViewBox("0 0 100")
	assert.Error(t, err)
	_, err = ParseViewBox("0 0 0 100")
	assert.Error(t, err)
}

func TestPolygonContains(t *testing.T) {
	square := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.True(t, square.Contains(Point{5, 5}))
	assert.False(t, square.Contains(Point{15, 5}))
	assert.False(t, square.Contains(Point{5, -1}))

	// L shape with the upper right quadrant cut out
	ell := Polygon{{0, 0}, {5, 0}, {5, 5}, {10, 5}, {10, 10}, {0, 10}}
	assert.True(t, ell.Contains(Point{2, 2}))
	assert.True(t, ell.Contains(Point{8, 8}))
	assert.False(t, ell.Contains(Point{8, 2}))

	assert.False(t, Polygon(nil).Contains(Point{}))
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, ell.Bounds())
	assert.Equal(t, Point{X: 5, Y: 5}, square.Centroid())
}

func TestPlanHitPrefersTopmost(t *testing.T) {
	pl := Plan{Shapes: []Shape{
		{ID: "big", Polygon: Polygon{{0, 0}, {100, 0}, {100, 100}, {0, 100}}},
		{ID: "small", Polygon: Polygon{{40, 40}, {60, 40}, {60, 60}, {40, 60}}},
	}}
	assert.Equal(t, 1, pl.Hit(Point{50, 50}))
	assert.Equal(t, 0, pl.Hit(Point{10, 10}))
	assert.Equal(t, -1, pl.Hit(Point{500, 10}))
	assert.Equal(t, BBox{MaxX: 100, MaxY: 100}, pl.Bounds())
}

func TestPathPolygon(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want Polygon
	}{
		{
			name: "absolute with close",
			d:    "M10 10 L20 10 L20 20 Z",
			want: Polygon{{10, 10}, {20, 10}, {20, 20}, {10, 10}},
		},
		{
			name: "relative with implicit line-tos",
			d:    "m 1,1 2,0 0,2",
			want: Polygon{{1, 1}, {3, 1}, {3, 3}},
		},
		{
			name: "horizontal and vertical",
			d:    "M0 0 H5 V5 h-5 v-2",
			want: Polygon{{0, 0}, {5, 0}, {5, 5}, {0, 5}, {0, 3}},
		},
		{
			name: "rounded to hundredths",
			d:    "M0.123 0.456 L1 1 L2 0",
			want: Polygon{{0.12, 0.46}, {1, 1}, {2, 0}},
		},
		{
			name: "curves skipped",
			d:    "M0 0 C 1 1 2 2 3 3 L4 0 L4 4",
			want: Polygon{{0, 0}, {4, 0}, {4, 4}},
		},
		{name: "too short", d: "M0 0 L1 1"},
		{name: "empty", d: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathPolygon(tt.d))
		})
	}
}

const sampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
  <g id="plots">
    <rect id="V-1" x="0" y="0" width="10" height="20"/>
    <rect x="5" y="5" width="0" height="3"/>
    <polygon points="0,0 10,0 10,10"/>
    <path d="M 10 10 l 5 0 v 5 h -5 z"/>
    <path id="line" d="M0 0 L1 1"/>
    <circle id="c" r="4"/>
  </g>
</svg>`

func TestParseSVG(t *testing.T) {
	pl, err := ParseSVG(strings.NewReader(sampleSVG))
	require.NoError(t, err)
	assert.Equal(t, BBox{MaxX: 200, MaxY: 100}, pl.ViewBox)

	var ids []string
	for _, s := range pl.Shapes {
		ids = append(ids, s.ID)
	}
	// the zero-width rect still consumes Rect-1
	assert.Equal(t, []string{"V-1", "Poly-2", "Path-3"}, ids)
	assert.Equal(t, Polygon{{0, 0}, {10, 0}, {10, 20}, {0, 20}}, pl.Shapes[0].Polygon)
	assert.Len(t, pl.Shapes[2].Polygon, 5)
}

func TestParseSVGDefaultViewBox(t *testing.T) {
	pl, err := ParseSVG(strings.NewReader(`<svg><polygon id="a" points="0,0 1,0 1,1"/></svg>`))
	require.NoError(t, err)
	assert.Equal(t, BBox{MaxX: 1000, MaxY: 1000}, pl.ViewBox)

	_, err = ParseSVG(strings.NewReader(`<html></html>`))
	assert.Error(t, err)
}

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"id": "V-12"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,2],[0,2],[0,0]]]}},
    {"type": "Feature", "id": 7, "properties": {},
     "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[10,10],[11,10],[11,11],[10,10]]],
        [[[20,20],[21,20],[21,21],[20,20]]]
     ]}},
    {"type": "Feature", "properties": {"id": "pin"},
     "geometry": {"type": "Point", "coordinates": [1,1]}},
    {"type": "Feature",
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
  ]
}`

func TestParseGeoJSON(t *testing.T) {
	pl, err := ParseGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)

	var ids []string
	for _, s := range pl.Shapes {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"V-12", "7", "7", "Feature-1"}, ids)
	// closing vertex dropped and latitude flipped
	assert.Equal(t, Polygon{{0, 0}, {4, 0}, {4, -2}, {0, -2}}, pl.Shapes[0].Polygon)
	assert.Equal(t, BBox{MinX: 0, MinY: -21, MaxX: 21, MaxY: 0}, pl.ViewBox)

	_, err = ParseGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.Error(t, err)
}

func TestLoadPlanFormats(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	pl, err := LoadPlan(write("map.svg", sampleSVG))
	require.NoError(t, err)
	assert.Len(t, pl.Shapes, 3)

	pl, err = LoadPlan(write("plots.json", `{"viewBox":"0 0 50 50","plots":[{"id":"V-1","points":"0,0 5,0 5,5"},{"id":"x","points":"1,1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Shape{{ID: "V-1", Polygon: Polygon{{0, 0}, {5, 0}, {5, 5}}}}, pl.Shapes)

	// geojson content with a .json extension is sniffed
	pl, err = LoadPlan(write("areas.json", sampleGeoJSON))
	require.NoError(t, err)
	assert.Len(t, pl.Shapes, 4)

	_, err = LoadPlan(write("bad.json", `{"plots":[{"id":"a","points":"1,2,3"}]}`))
	assert.ErrorContains(t, err, "plot a")

	_, err = LoadPlan(write("notes.txt", "hello"))
	assert.Error(t, err)
	_, err = LoadPlan(filepath.Join(dir, "missing.svg"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.True(t, Supported("A.SVG"))
	assert.False(t, Supported("a.kml"))
}

func TestEncodePlanRoundTrip(t *testing.T) {
	pl, err := ParseSVG(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePlan(&buf, pl))
	assert.Contains(t, buf.String(), `"viewBox": "0 0 200 100"`)

	back, err := DecodePlan(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, pl, back)
}
