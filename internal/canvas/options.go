package canvas

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOptions is wrapped by every configuration error returned from New.
var ErrInvalidOptions = errors.New("canvas: invalid options")

// BoundsMode selects how translation is limited.
type BoundsMode int

const (
	// BoundsAuto keeps a fraction of the viewport covered by content.
	BoundsAuto BoundsMode = iota
	// BoundsNone leaves translation unclamped.
	BoundsNone
	// BoundsExplicit clamps translation to fixed limits.
	BoundsExplicit
)

func (m BoundsMode) String() string {
	switch m {
	case BoundsAuto:
		return "auto"
	case BoundsNone:
		return "none"
	case BoundsExplicit:
		return "explicit"
	}
	return "BoundsMode(" + strconv.Itoa(int(m)) + ")"
}

// Bounds configures the translation clamp. For BoundsExplicit, Left/Right
// limit TranslateX and Top/Bottom limit TranslateY.
type Bounds struct {
	Mode   BoundsMode
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

func (b Bounds) String() string {
	if b.Mode != BoundsExplicit {
		return b.Mode.String()
	}
	return fmt.Sprintf("%g,%g,%g,%g", b.Left, b.Right, b.Top, b.Bottom)
}

// ParseBounds accepts "auto", "none" (or "disabled"/"off") and
// "left,right,top,bottom".
func ParseBounds(s string) (Bounds, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Bounds{Mode: BoundsAuto}, nil
	case "none", "disabled", "off", "false":
		return Bounds{Mode: BoundsNone}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("%w: bounds %q: want auto, none or left,right,top,bottom", ErrInvalidOptions, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !finite(f) {
			return Bounds{}, fmt.Errorf("%w: bounds %q: bad number %q", ErrInvalidOptions, s, strings.TrimSpace(p))
		}
		v[i] = f
	}
	return Bounds{Mode: BoundsExplicit, Left: v[0], Right: v[1], Top: v[2], Bottom: v[3]}, nil
}

// Options configures a Canvas.
type Options struct {
	MinZoom     float64
	MaxZoom     float64
	InitialZoom float64
	Bounds      Bounds

	// Margin is the fraction of the viewport that must stay covered by
	// content under BoundsAuto.
	Margin float64

	// DragThreshold is the distance in pixels a drag must travel before it
	// pans; shorter gestures are taps.
	DragThreshold float64

	// WheelStep is the scale change per wheel tick; WheelAccel multiplies it
	// while the accelerator modifier is held.
	WheelStep  float64
	WheelAccel float64

	// FineWheel divides the wheel step by the current scale once zoomed in.
	FineWheel bool
}

// DefaultOptions mirrors the viewer's stock behaviour.
func DefaultOptions() Options {
	return Options{
		MinZoom:       0.1,
		MaxZoom:       10,
		InitialZoom:   1,
		Bounds:        Bounds{Mode: BoundsAuto},
		Margin:        0.1,
		DragThreshold: 4,
		WheelStep:     0.3,
		WheelAccel:    3,
	}
}

// Validate reports the first configuration violation, wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"minZoom", o.MinZoom},
		{"maxZoom", o.MaxZoom},
		{"initialZoom", o.InitialZoom},
		{"margin", o.Margin},
		{"dragThreshold", o.DragThreshold},
		{"wheelStep", o.WheelStep},
		{"wheelAccel", o.WheelAccel},
	} {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidOptions, f.name)
		}
	}
	switch {
	case o.MinZoom <= 0:
		return fmt.Errorf("%w: minZoom %g must be positive", ErrInvalidOptions, o.MinZoom)
	case o.MinZoom > o.MaxZoom:
		return fmt.Errorf("%w: minZoom %g exceeds maxZoom %g", ErrInvalidOptions, o.MinZoom, o.MaxZoom)
	case o.InitialZoom < o.MinZoom || o.InitialZoom > o.MaxZoom:
		return fmt.Errorf("%w: initialZoom %g outside [%g, %g]", ErrInvalidOptions, o.InitialZoom, o.MinZoom, o.MaxZoom)
	case o.Margin < 0 || o.Margin > 1:
		return fmt.Errorf("%w: margin %g outside [0, 1]", ErrInvalidOptions, o.Margin)
	case o.DragThreshold < 0:
		return fmt.Errorf("%w: dragThreshold %g is negative", ErrInvalidOptions, o.DragThreshold)
	case o.WheelStep <= 0:
		return fmt.Errorf("%w: wheelStep %g must be positive", ErrInvalidOptions, o.WheelStep)
	case o.WheelAccel < 1:
		return fmt.Errorf("%w: wheelAccel %g must be at least 1", ErrInvalidOptions, o.WheelAccel)
	}
	switch o.Bounds.Mode {
	case BoundsAuto, BoundsNone:
	case BoundsExplicit:
		b := o.Bounds
		if !finite(b.Left) || !finite(b.Right) || !finite(b.Top) || !finite(b.Bottom) {
			return fmt.Errorf("%w: explicit bounds must be finite", ErrInvalidOptions)
		}
	default:
		return fmt.Errorf("%w: unknown bounds mode %v", ErrInvalidOptions, o.Bounds.Mode)
	}
	return nil
}

func (o Options) clampScale(s float64) float64 {
	return min(max(s, o.MinZoom), o.MaxZoom)
}
