package geom

import (
	"math"
	"regexp"
	"strconv"
)

var pathToken = regexp.MustCompile(`[A-Za-z]|[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// PathPolygon flattens an SVG path made of M, L, H, V and Z commands (and
// their relative forms) into a ring. Coordinates are rounded to hundredths.
// Numbers following any other command are skipped. Paths with fewer than
// three vertices yield nil.
func PathPolygon(d string) Polygon {
	tokens := pathToken.FindAllString(d, -1)
	var (
		out          Polygon
		cmd          byte
		x, y, x0, y0 float64
	)
	push := func(nx, ny float64) {
		x, y = nx, ny
		out = append(out, Point{X: round2(x), Y: round2(y)})
	}
	next := func(i *int) (float64, bool) {
		if *i >= len(tokens) {
			return 0, false
		}
		v, err := strconv.ParseFloat(tokens[*i], 64)
		if err != nil {
			return 0, false
		}
		*i++
		return v, true
	}
	for i := 0; i < len(tokens); {
		t := tokens[i]
		if c := t[0]; (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			cmd = c
			i++
			if c == 'Z' || c == 'z' {
				push(x0, y0)
			}
			continue
		}
		a, ok := next(&i)
		if !ok {
			break
		}
		switch cmd {
		case 'M', 'm', 'L', 'l':
			b, ok := next(&i)
			if !ok {
				i = len(tokens)
				break
			}
			if cmd == 'm' || cmd == 'l' {
				a, b = x+a, y+b
			}
			push(a, b)
			// extra pairs after a move are implicit line-tos
			switch cmd {
			case 'M':
				x0, y0, cmd = x, y, 'L'
			case 'm':
				x0, y0, cmd = x, y, 'l'
			}
		case 'H':
			push(a, y)
		case 'h':
			push(x+a, y)
		case 'V':
			push(x, a)
		case 'v':
			push(x, y+a)
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
