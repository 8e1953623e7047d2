package canvas

import "math"

// dragMemo lives from DragStart until DragEnd or DragCancel.
type dragMemo struct {
	startTranslate Point
	origin         Point
	panning        bool
	stale          bool // a pinch moved the transform under this drag
}

// pinchMemo lives from PinchStart until PinchEnd or PinchCancel.
type pinchMemo struct {
	start  Transform
	anchor Point // content point under focal at gesture start
	focal  Point // latest focal point
	ratio  float64
}

// rebase restarts the pinch from t, keeping the content point now under the
// last focal point as the anchor.
func (p *pinchMemo) rebase(t Transform, viewport Size) {
	p.start, p.ratio = t, 1
	p.anchor = t.ScreenToContent(p.focal, viewport)
}

// WheelEvent is one wheel tick at a pointer position. Negative DeltaY zooms in.
type WheelEvent struct {
	DeltaY     float64
	Pos        Point
	Accelerate bool
}

// DragStart begins a pan gesture at p. A second start while a drag is
// active is ignored.
func (c *Canvas) DragStart(p Point) {
	if c.drag != nil || !p.finite() {
		return
	}
	c.drag = &dragMemo{startTranslate: c.Transform().Translate(), origin: p}
}

// DragMove pans by the cumulative offset from the drag origin. Movement
// shorter than the drag threshold is not a pan yet.
func (c *Canvas) DragMove(p Point) {
	d := c.drag
	if d == nil || !p.finite() {
		return
	}
	if c.pinch != nil {
		// the pinch owns translation through its focal drift
		d.origin, d.stale = p, true
		return
	}
	if d.stale {
		d.startTranslate = c.Transform().Translate()
		d.stale, d.panning = false, true
	}
	off := p.Sub(d.origin)
	if !d.panning {
		if off.Len() < c.opts.DragThreshold {
			return
		}
		d.panning = true
	}
	next := d.startTranslate.Add(off)
	t := c.Transform()
	c.apply(Transform{TranslateX: next.X, TranslateY: next.Y, Scale: t.Scale})
}

// DragEnd finishes the drag at p and reports whether it was a tap, i.e. it
// never left the threshold radius. Ending without a start is a no-op.
func (c *Canvas) DragEnd(p Point) (tap bool) {
	if c.drag == nil {
		return false
	}
	c.DragMove(p)
	tap = !c.drag.panning
	c.drag = nil
	return tap
}

// DragCancel abandons the drag, leaving the transform where it is.
func (c *Canvas) DragCancel() { c.drag = nil }

// Dragging reports whether a drag gesture is in progress.
func (c *Canvas) Dragging() bool { return c.drag != nil }

// PinchStart begins a pinch anchored at focal.
func (c *Canvas) PinchStart(focal Point) {
	if c.pinch != nil || !focal.finite() {
		return
	}
	t := c.Transform()
	c.pinch = &pinchMemo{
		start:  t,
		anchor: t.ScreenToContent(focal, c.viewport),
		focal:  focal,
		ratio:  1,
	}
}

// PinchUpdate applies ratio, the scale factor since the previous sample, with
// the gesture centroid now at focal. The content point that was under the
// starting focal point is placed under focal.
func (c *Canvas) PinchUpdate(ratio float64, focal Point) {
	p := c.pinch
	if p == nil || !finite(ratio) || ratio <= 0 || !focal.finite() {
		return
	}
	scale := c.opts.clampScale(p.start.Scale * p.ratio * ratio)
	if !finite(scale) {
		return
	}
	// accumulate the clamped ratio so reversing direction at a limit
	// responds immediately
	p.ratio = scale / p.start.Scale
	p.focal = focal
	c.apply(anchoredAt(p.anchor, focal, scale, c.viewport))
}

// PinchEnd finishes the pinch. Ending without a start is a no-op.
func (c *Canvas) PinchEnd() { c.pinch = nil }

// PinchCancel abandons the pinch, leaving the transform where it is.
func (c *Canvas) PinchCancel() { c.pinch = nil }

// Pinching reports whether a pinch gesture is in progress.
func (c *Canvas) Pinching() bool { return c.pinch != nil }

// Wheel zooms one step around the pointer. It reports whether the transform
// changed; ticks whose scale change rounds to zero are dropped.
func (c *Canvas) Wheel(ev WheelEvent) bool {
	if !finite(ev.DeltaY) || ev.DeltaY == 0 || !ev.Pos.finite() {
		return false
	}
	t := c.Transform()
	step := c.opts.WheelStep
	if ev.Accelerate {
		step *= c.opts.WheelAccel
	}
	if c.opts.FineWheel {
		step /= max(1, t.Scale)
	}
	scale := c.opts.clampScale(t.Scale - math.Copysign(step, ev.DeltaY))
	if roundScale(scale-t.Scale) == 0 {
		return false
	}
	return c.apply(t.zoomAround(scale, ev.Pos, c.viewport))
}

func roundScale(v float64) float64 { return math.Round(v*1000) / 1000 }
