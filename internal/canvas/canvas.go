// Package canvas maintains the pan/zoom transform of a viewport over fixed
// size content. Drag, pinch and wheel input are turned into transforms that
// keep the content under the gesture's focal point, and every write is
// clamped so the content never leaves the viewport entirely.
//
// A Canvas is driven from a single event loop: gesture methods and control
// calls must not run concurrently. Transform may be read from any goroutine.
package canvas

import "fmt"

// Canvas owns one transform over content of a fixed size.
type Canvas struct {
	opts     Options
	content  Size
	viewport Size
	state    *state

	drag  *dragMemo
	pinch *pinchMemo
}

// New returns a canvas at {0, 0, opts.InitialZoom}. Invalid options or sizes
// fail with an error wrapping ErrInvalidOptions.
func New(content, viewport Size, opts Options) (*Canvas, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !content.Valid() {
		return nil, fmt.Errorf("%w: content size %gx%g", ErrInvalidOptions, content.Width, content.Height)
	}
	if !viewport.Valid() {
		return nil, fmt.Errorf("%w: viewport size %gx%g", ErrInvalidOptions, viewport.Width, viewport.Height)
	}
	c := &Canvas{opts: opts, content: content, viewport: viewport}
	c.state = newState(c.initial(), opts.MinZoom, opts.MaxZoom)
	return c, nil
}

func (c *Canvas) initial() Transform { return Transform{Scale: c.opts.InitialZoom} }

// Transform returns the current transform.
func (c *Canvas) Transform() Transform { return c.state.load() }

func (c *Canvas) Options() Options { return c.opts }
func (c *Canvas) Content() Size    { return c.content }
func (c *Canvas) Viewport() Size   { return c.viewport }

// OnZoomChange registers fn to be called synchronously whenever the scale
// changes.
func (c *Canvas) OnZoomChange(fn func(scale float64)) {
	c.state.onZoom = append(c.state.onZoom, fn)
}

// OnTransform registers fn to be called synchronously after every write that
// changes the transform.
func (c *Canvas) OnTransform(fn func(Transform)) {
	c.state.onTransform = append(c.state.onTransform, fn)
}

// SetViewport updates the on-screen area and re-clamps the transform.
// Degenerate sizes are ignored. A pinch in progress continues from the
// resized view.
func (c *Canvas) SetViewport(v Size) {
	if !v.Valid() || v == c.viewport {
		return
	}
	c.viewport = v
	c.apply(c.Transform())
	if c.pinch != nil {
		c.pinch.rebase(c.Transform(), c.viewport)
	}
}

// apply clamps a candidate and writes it. Candidates with a non-finite
// component or a non-positive scale are dropped.
func (c *Canvas) apply(candidate Transform) bool {
	if !candidate.valid() {
		return false
	}
	return c.state.store(Clamp(candidate, c.content, c.viewport, c.opts))
}

// Change edits a transform in SetTransform.
type Change func(*Transform)

// WithScale sets the scale.
func WithScale(s float64) Change { return func(t *Transform) { t.Scale = s } }

// WithTranslate sets both translate components.
func WithTranslate(x, y float64) Change {
	return func(t *Transform) { t.TranslateX, t.TranslateY = x, y }
}

// SetTransform applies changes to the current transform and writes the
// clamped result. Fields left untouched keep their current values.
func (c *Canvas) SetTransform(changes ...Change) bool {
	next := c.Transform()
	for _, ch := range changes {
		ch(&next)
	}
	return c.apply(next)
}

// ZoomIn multiplies the scale by factor around the viewport centre.
func (c *Canvas) ZoomIn(factor float64) bool {
	return c.ZoomInAt(factor, c.viewport.Center())
}

// ZoomOut divides the scale by factor around the viewport centre.
func (c *Canvas) ZoomOut(factor float64) bool {
	return c.ZoomOutAt(factor, c.viewport.Center())
}

// ZoomInAt multiplies the scale by factor keeping the content under center fixed.
func (c *Canvas) ZoomInAt(factor float64, center Point) bool {
	if !finite(factor) || factor <= 0 || !center.finite() {
		return false
	}
	t := c.Transform()
	scale := c.opts.clampScale(t.Scale * factor)
	if scale == t.Scale {
		return false
	}
	return c.apply(t.zoomAround(scale, center, c.viewport))
}

// ZoomOutAt divides the scale by factor keeping the content under center fixed.
func (c *Canvas) ZoomOutAt(factor float64, center Point) bool {
	if !finite(factor) || factor <= 0 {
		return false
	}
	return c.ZoomInAt(1/factor, center)
}

// Reset restores {0, 0, InitialZoom} and drops any gesture in progress.
func (c *Canvas) Reset() {
	c.drag, c.pinch = nil, nil
	c.state.store(c.initial())
}

// FitScale is the largest scale at which the whole content fits the viewport.
func (c *Canvas) FitScale() float64 {
	return min(c.viewport.Width/c.content.Width, c.viewport.Height/c.content.Height)
}

// FitToView scales the content to fit the viewport and centres it.
func (c *Canvas) FitToView() bool {
	return c.apply(Transform{Scale: c.FitScale()})
}

// CanZoomIn reports whether the scale is below the maximum.
func (c *Canvas) CanZoomIn() bool { return c.Transform().Scale < c.opts.MaxZoom }

// CanZoomOut reports whether the scale is above the minimum.
func (c *Canvas) CanZoomOut() bool { return c.Transform().Scale > c.opts.MinZoom }
