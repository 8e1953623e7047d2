package canvas

import (
	"math"

	"gioui.org/f32"
)

// Point is a position in screen pixels or content units.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len is the euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) finite() bool { return finite(p.X) && finite(p.Y) }

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Center returns the midpoint of a rectangle of size s anchored at the origin.
func (s Size) Center() Point { return Point{X: s.Width / 2, Y: s.Height / 2} }

// Valid reports whether both dimensions are finite and strictly positive.
func (s Size) Valid() bool {
	return finite(s.Width) && finite(s.Height) && s.Width > 0 && s.Height > 0
}

// Transform places content on screen. Content coordinates are measured from
// the content centre, so the zero translate centres the content in the
// viewport:
//
//	screen = viewportCenter + translate + scale*content
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// Translate returns the translation part as a point.
func (t Transform) Translate() Point { return Point{X: t.TranslateX, Y: t.TranslateY} }

func (t Transform) valid() bool {
	return finite(t.TranslateX) && finite(t.TranslateY) && finite(t.Scale) && t.Scale > 0
}

// ScreenToContent maps a screen position to content coordinates.
func (t Transform) ScreenToContent(p Point, viewport Size) Point {
	c := viewport.Center()
	return Point{
		X: (p.X - c.X - t.TranslateX) / t.Scale,
		Y: (p.Y - c.Y - t.TranslateY) / t.Scale,
	}
}

// ContentToScreen maps content coordinates to a screen position.
func (t Transform) ContentToScreen(p Point, viewport Size) Point {
	c := viewport.Center()
	return Point{
		X: c.X + t.TranslateX + t.Scale*p.X,
		Y: c.Y + t.TranslateY + t.Scale*p.Y,
	}
}

// Affine returns the content-to-screen mapping as a gio affine matrix, for
// renderers that project many vertices at once.
func (t Transform) Affine(viewport Size) f32.Affine2D {
	c := viewport.Center()
	return f32.NewAffine2D(
		float32(t.Scale), 0, float32(c.X+t.TranslateX),
		0, float32(t.Scale), float32(c.Y+t.TranslateY),
	)
}

// zoomAround returns a transform with the given scale that keeps the content
// point currently under focal at focal.
func (t Transform) zoomAround(scale float64, focal Point, viewport Size) Transform {
	anchor := t.ScreenToContent(focal, viewport)
	return anchoredAt(anchor, focal, scale, viewport)
}

// anchoredAt solves screen(anchor) == focal for the translate at the given scale.
func anchoredAt(anchor, focal Point, scale float64, viewport Size) Transform {
	c := viewport.Center()
	return Transform{
		TranslateX: focal.X - c.X - scale*anchor.X,
		TranslateY: focal.Y - c.Y - scale*anchor.Y,
		Scale:      scale,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
