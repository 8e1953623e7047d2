package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// numbers splits an SVG number list. Commas and whitespace both separate.
func numbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParsePoints parses an SVG points attribute such as "10,20 30,40 50,60".
func ParsePoints(s string) (Polygon, error) {
	nums, err := numbers(s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, errors.New("odd number of coordinates")
	}
	pg := make(Polygon, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		pg = append(pg, Point{X: nums[i], Y: nums[i+1]})
	}
	return pg, nil
}

// FormatPoints is the inverse of ParsePoints.
func FormatPoints(pg Polygon) string {
	var sb strings.Builder
	for i, p := range pg {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return sb.String()
}

// ParseViewBox parses "min-x min-y width height".
func ParseViewBox(s string) (BBox, error) {
	nums, err := numbers(s)
	if err != nil {
		return BBox{}, fmt.Errorf("viewBox: %w", err)
	}
	if len(nums) != 4 {
		return BBox{}, fmt.Errorf("viewBox %q: want 4 numbers", s)
	}
	if nums[2] <= 0 || nums[3] <= 0 {
		return BBox{}, fmt.Errorf("viewBox %q: non-positive size", s)
	}
	return BBox{MinX: nums[0], MinY: nums[1], MaxX: nums[0] + nums[2], MaxY: nums[1] + nums[3]}, nil
}
