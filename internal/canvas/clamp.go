package canvas

// Range is a closed interval. An inverted range (Min > Max) clamps every
// value to its midpoint.
type Range struct {
	Min float64
	Max float64
}

// Clamp returns the nearest value to v inside r.
func (r Range) Clamp(v float64) float64 {
	if r.Min > r.Max {
		return (r.Min + r.Max) / 2
	}
	return min(max(v, r.Min), r.Max)
}

// Contains reports whether v lies in r.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// TranslateRange returns the legal translate intervals for the given scale.
// ok is false when translation is unbounded.
func TranslateRange(scale float64, content, viewport Size, opts Options) (x, y Range, ok bool) {
	switch opts.Bounds.Mode {
	case BoundsNone:
		return Range{}, Range{}, false
	case BoundsExplicit:
		b := opts.Bounds
		return Range{Min: b.Left, Max: b.Right}, Range{Min: b.Top, Max: b.Bottom}, true
	}
	x = coverRange(content.Width*scale, viewport.Width, opts.Margin)
	y = coverRange(content.Height*scale, viewport.Height, opts.Margin)
	return x, y, true
}

// coverRange limits the centred translate along one axis so that at least
// margin*view pixels of the viewport overlap the content, i.e. at most
// (1-margin)*view of it is empty. Content smaller than that must stay fully
// inside the viewport instead. The legal interval is view+scaled-2*need wide
// and so never lets large content slide out of view.
func coverRange(scaled, view, margin float64) Range {
	need := min(margin*view, scaled)
	slack := (view+scaled)/2 - need
	return Range{Min: -slack, Max: slack}
}

// Clamp restricts a candidate transform to the configured scale range and the
// legal translate range for its (clamped) scale. It has no side effects.
func Clamp(candidate Transform, content, viewport Size, opts Options) Transform {
	out := candidate
	out.Scale = opts.clampScale(candidate.Scale)
	rx, ry, ok := TranslateRange(out.Scale, content, viewport, opts)
	if !ok {
		return out
	}
	out.TranslateX = rx.Clamp(out.TranslateX)
	out.TranslateY = ry.Clamp(out.TranslateY)
	return out
}
