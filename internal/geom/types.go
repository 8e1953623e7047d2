package geom

import "math"

// Point is a position in plan units. Y grows downward as in SVG.
type Point struct {
	X float64
	Y float64
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Empty reports whether b encloses no area.
func (b BBox) Empty() bool { return !(b.MaxX > b.MinX && b.MaxY > b.MinY) }

// Center is the midpoint of b.
func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

func (b BBox) extend(p Point) BBox {
	return BBox{
		MinX: math.Min(b.MinX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MaxX: math.Max(b.MaxX, p.X),
		MaxY: math.Max(b.MaxY, p.Y),
	}
}

// Polygon is a closed ring; the last vertex connects back to the first.
type Polygon []Point

// Bounds is the bounding box of the ring.
func (pg Polygon) Bounds() BBox {
	if len(pg) == 0 {
		return BBox{}
	}
	b := BBox{MinX: pg[0].X, MinY: pg[0].Y, MaxX: pg[0].X, MaxY: pg[0].Y}
	for _, p := range pg[1:] {
		b = b.extend(p)
	}
	return b
}

// Contains reports whether p lies inside the ring under the even-odd rule.
func (pg Polygon) Contains(p Point) bool {
	in := false
	for i, j := 0, len(pg)-1; i < len(pg); j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// Centroid is the vertex average, good enough for label placement.
func (pg Polygon) Centroid() Point {
	var c Point
	if len(pg) == 0 {
		return c
	}
	for _, p := range pg {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pg))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Shape is one identified outline of the plan.
type Shape struct {
	ID      string
	Polygon Polygon
}

// Plan is the fixed content drawn on the canvas.
type Plan struct {
	ViewBox BBox
	Shapes  []Shape
}

// Hit returns the index of the topmost shape containing p, or -1. Later
// shapes draw over earlier ones, so the search runs back to front.
func (pl Plan) Hit(p Point) int {
	for i := len(pl.Shapes) - 1; i >= 0; i-- {
		if pl.Shapes[i].Polygon.Contains(p) {
			return i
		}
	}
	return -1
}

// Bounds is the bounding box of every shape.
func (pl Plan) Bounds() BBox {
	first := true
	var b BBox
	for _, s := range pl.Shapes {
		for _, p := range s.Polygon {
			if first {
				b = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				first = false
				continue
			}
			b = b.extend(p)
		}
	}
	return b
}
