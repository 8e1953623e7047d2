package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a 2x4 micro-pixel grid per terminal cell. Each cell carries
// one foreground colour; the last paint into a cell wins.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	fg   [][]lipgloss.Color
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	fg := make([][]lipgloss.Color, h)
	for i := range m {
		m[i] = make([]uint8, w)
		fg[i] = make([]lipgloss.Color, w)
	}
	return &brailleBuf{w: w, h: h, m: m, fg: fg}
}

// dot bits indexed by [column][row] within a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) (cx, cy int, ok bool) {
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	cx, cy = mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return 0, 0, false
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
	return cx, cy, true
}

// paint sets a micro-pixel and colours its cell.
func (b *brailleBuf) paint(mx, my int, c lipgloss.Color) {
	if cx, cy, ok := b.setPixel(mx, my); ok && c != "" {
		b.fg[cy][cx] = c
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c lipgloss.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.paint(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawSegment clips a float segment to the grid before rasterising it.
func (b *brailleBuf) drawSegment(a, z [2]float64, c lipgloss.Color) {
	a, z, ok := clipSegment(a, z, float64(b.w*2), float64(b.h*4))
	if !ok {
		return
	}
	b.drawLineMicro(int(math.Floor(a[0])), int(math.Floor(a[1])), int(math.Floor(z[0])), int(math.Floor(z[1])), c)
}

// fillRing fills a ring with the even-odd rule, sampling pixel centres.
func (b *brailleBuf) fillRing(ring [][2]float64, c lipgloss.Color) {
	if len(ring) < 3 {
		return
	}
	minY, maxY := ring[0][1], ring[0][1]
	for _, p := range ring[1:] {
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	hMic, wMic := b.h*4, b.w*2
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(hMic-1, int(math.Ceil(maxY)))
	var xs []float64
	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for i := range ring {
			a, z := ring[i], ring[(i+1)%len(ring)]
			if (a[1] > yc) == (z[1] > yc) {
				continue
			}
			t := (yc - a[1]) / (z[1] - a[1])
			xs = append(xs, a[0]+t*(z[0]-a[0]))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := max(0, int(math.Ceil(xs[i]-0.5)))
			to := min(wMic-1, int(math.Floor(xs[i+1]-0.5)))
			for x := from; x <= to; x++ {
				b.paint(x, y, c)
			}
		}
	}
}

// toLines renders the grid without colour.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = b.glyph(x, y)
		}
		out[y] = string(row)
	}
	return out
}

func (b *brailleBuf) glyph(x, y int) rune {
	if mask := b.m[y][x]; mask != 0 {
		return rune(0x2800 + int(mask))
	}
	return ' '
}

// render styles runs of equally coloured cells. Uncoloured dots use def.
func (b *brailleBuf) render(def lipgloss.Color) []string {
	out := make([]string, b.h)
	var sb, run strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		var cur lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(cur).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < b.w; x++ {
			g := b.glyph(x, y)
			if g == ' ' {
				flush()
				sb.WriteRune(' ')
				continue
			}
			c := b.fg[y][x]
			if c == "" {
				c = def
			}
			if c != cur {
				flush()
				cur = c
			}
			run.WriteRune(g)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// clipSegment clips a-z to [0,w)x[0,h) (Liang-Barsky).
func clipSegment(a, z [2]float64, w, h float64) ([2]float64, [2]float64, bool) {
	dx, dy := z[0]-a[0], z[1]-a[1]
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a[0]},
		{dx, w - 1e-9 - a[0]},
		{-dy, a[1]},
		{dy, h - 1e-9 - a[1]},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, z, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return a, z, false
		}
	}
	return [2]float64{a[0] + t0*dx, a[1] + t0*dy}, [2]float64{a[0] + t1*dx, a[1] + t1*dy}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
