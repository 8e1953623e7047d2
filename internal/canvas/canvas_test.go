package canvas

import (
	"sync"
	"sync/atomic"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCanvas(t *testing.T, content, viewport Size, opts Options) *Canvas {
	t.Helper()
	c, err := New(content, viewport, opts)
	require.NoError(t, err)
	return c
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	content := Size{Width: 100, Height: 100}
	viewport := Size{Width: 100, Height: 100}
	tests := []struct {
		name     string
		mutate   func(*Options)
		content  Size
		viewport Size
	}{
		{name: "min above max", mutate: func(o *Options) { o.MinZoom, o.MaxZoom = 5, 2 }},
		{name: "initial out of range", mutate: func(o *Options) { o.InitialZoom = 20 }},
		{name: "zero min", mutate: func(o *Options) { o.MinZoom = 0 }},
		{name: "margin above one", mutate: func(o *Options) { o.Margin = 2 }},
		{name: "negative threshold", mutate: func(o *Options) { o.DragThreshold = -1 }},
		{name: "zero wheel step", mutate: func(o *Options) { o.WheelStep = 0 }},
		{name: "unknown bounds", mutate: func(o *Options) { o.Bounds.Mode = BoundsMode(9) }},
		{name: "zero content", content: Size{Width: 0, Height: 10}},
		{name: "zero viewport", viewport: Size{Width: 10, Height: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			c, v := content, viewport
			if tt.content != (Size{}) {
				c = tt.content
			}
			if tt.viewport != (Size{}) {
				v = tt.viewport
			}
			got, err := New(c, v, opts)
			require.ErrorIs(t, err, ErrInvalidOptions)
			assert.Nil(t, got)
		})
	}
}

func TestNewStartsAtInitialZoom(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialZoom = 2
	c := mustCanvas(t, Size{Width: 100, Height: 100}, Size{Width: 100, Height: 100}, opts)
	assert.Equal(t, Transform{Scale: 2}, c.Transform())
}

func TestResetAfterGestures(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsNone}
	c := mustCanvas(t, Size{Width: 800, Height: 600}, Size{Width: 800, Height: 600}, opts)

	var zooms []float64
	c.OnZoomChange(func(s float64) { zooms = append(zooms, s) })

	c.Wheel(WheelEvent{DeltaY: -1, Pos: Pt(100, 100)})
	c.DragStart(Pt(10, 10))
	c.DragMove(Pt(200, 150))
	c.PinchStart(Pt(300, 300))
	c.PinchUpdate(1.7, Pt(320, 310))
	require.NotEqual(t, Transform{Scale: 1}, c.Transform())

	c.Reset()
	assert.Equal(t, Transform{Scale: 1}, c.Transform())
	assert.False(t, c.Dragging())
	assert.False(t, c.Pinching())
	assert.Equal(t, 1.0, zooms[len(zooms)-1])

	// a move after reset belongs to no gesture
	c.DragMove(Pt(500, 500))
	c.PinchUpdate(2, Pt(0, 0))
	assert.Equal(t, Transform{Scale: 1}, c.Transform())
}

func TestResetIgnoresBoundsClamp(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsExplicit, Left: 50, Right: 60, Top: 50, Bottom: 60}
	c := mustCanvas(t, Size{Width: 100, Height: 100}, Size{Width: 100, Height: 100}, opts)
	c.SetTransform(WithScale(3))
	assert.Equal(t, 50.0, c.Transform().TranslateX)

	c.Reset()
	assert.Equal(t, Transform{Scale: 1}, c.Transform())
}

func TestFitToView(t *testing.T) {
	tests := []struct {
		name    string
		content Size
		want    float64
	}{
		{name: "wide content", content: Size{Width: 1000, Height: 600}, want: 0.8},
		{name: "square content", content: Size{Width: 1000, Height: 1000}, want: 0.6},
		{name: "small content", content: Size{Width: 200, Height: 100}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCanvas(t, tt.content, Size{Width: 800, Height: 600}, DefaultOptions())
			var zooms []float64
			c.OnZoomChange(func(s float64) { zooms = append(zooms, s) })

			c.SetTransform(WithTranslate(40, -25))
			require.True(t, c.FitToView())
			got := c.Transform()
			assert.InDelta(t, tt.want, got.Scale, 1e-12)
			assert.Zero(t, got.TranslateX)
			assert.Zero(t, got.TranslateY)
			require.Len(t, zooms, 1)
			assert.InDelta(t, tt.want, zooms[0], 1e-12)
		})
	}
}

func TestFitToViewClampsToMaxZoom(t *testing.T) {
	c := mustCanvas(t, Size{Width: 10, Height: 10}, Size{Width: 800, Height: 600}, DefaultOptions())
	c.FitToView()
	assert.Equal(t, 10.0, c.Transform().Scale)
}

func TestOnZoomChangeOnlyOnScaleChange(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsNone}
	c := mustCanvas(t, Size{Width: 400, Height: 400}, Size{Width: 400, Height: 400}, opts)

	var zooms []float64
	var writes int
	c.OnZoomChange(func(s float64) { zooms = append(zooms, s) })
	c.OnTransform(func(Transform) { writes++ })

	c.DragStart(Pt(0, 0))
	c.DragMove(Pt(50, 0))
	c.DragEnd(Pt(60, 10))
	assert.Empty(t, zooms)
	assert.Equal(t, 2, writes)

	c.ZoomIn(2)
	c.ZoomOut(2)
	assert.Equal(t, []float64{2, 1}, zooms)

	// no-op writes notify nobody
	c.SetTransform()
	assert.Equal(t, 4, writes)
}

func TestZoomKeepsViewportCentre(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsNone}
	vp := Size{Width: 600, Height: 400}
	c := mustCanvas(t, Size{Width: 600, Height: 400}, vp, opts)
	c.SetTransform(WithTranslate(35, -12))

	before := c.Transform().ScreenToContent(vp.Center(), vp)
	require.True(t, c.ZoomIn(1.5))
	assert.InDelta(t, 1.5, c.Transform().Scale, 1e-12)
	after := c.Transform().ScreenToContent(vp.Center(), vp)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	require.True(t, c.ZoomOut(3))
	assert.InDelta(t, 0.5, c.Transform().Scale, 1e-12)
	after = c.Transform().ScreenToContent(vp.Center(), vp)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomInAtKeepsPoint(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsNone}
	vp := Size{Width: 800, Height: 600}
	c := mustCanvas(t, Size{Width: 800, Height: 600}, vp, opts)

	at := Pt(120, 470)
	before := c.Transform().ScreenToContent(at, vp)
	require.True(t, c.ZoomInAt(2.5, at))
	after := c.Transform().ContentToScreen(before, vp)
	assert.InDelta(t, at.X, after.X, 1e-9)
	assert.InDelta(t, at.Y, after.Y, 1e-9)

	assert.False(t, c.ZoomInAt(0, at))
	assert.False(t, c.ZoomInAt(-2, at))
	assert.False(t, c.ZoomOutAt(0, at))
}

func TestZoomAtLimitsReportsNoChange(t *testing.T) {
	c := mustCanvas(t, Size{Width: 100, Height: 100}, Size{Width: 100, Height: 100}, DefaultOptions())
	require.True(t, c.ZoomIn(100))
	assert.Equal(t, 10.0, c.Transform().Scale)
	assert.False(t, c.CanZoomIn())
	assert.True(t, c.CanZoomOut())
	assert.False(t, c.ZoomIn(2))

	require.True(t, c.ZoomOut(1000))
	assert.Equal(t, 0.1, c.Transform().Scale)
	assert.True(t, c.CanZoomIn())
	assert.False(t, c.CanZoomOut())
}

func TestSetViewportReclamps(t *testing.T) {
	c := mustCanvas(t, Size{Width: 1000, Height: 600}, Size{Width: 800, Height: 600}, DefaultOptions())
	c.SetTransform(WithTranslate(5000, 5000))
	require.InDelta(t, 820, c.Transform().TranslateX, 1e-9)
	require.InDelta(t, 540, c.Transform().TranslateY, 1e-9)

	c.SetViewport(Size{Width: 400, Height: 300})
	assert.InDelta(t, 660, c.Transform().TranslateX, 1e-9)
	assert.InDelta(t, 420, c.Transform().TranslateY, 1e-9)
	assert.Equal(t, Size{Width: 400, Height: 300}, c.Viewport())

	c.SetViewport(Size{Width: 0, Height: 300})
	assert.Equal(t, Size{Width: 400, Height: 300}, c.Viewport())
}

func TestSetTransformPartial(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsNone}
	c := mustCanvas(t, Size{Width: 100, Height: 100}, Size{Width: 100, Height: 100}, opts)

	require.True(t, c.SetTransform(WithTranslate(7, 9)))
	require.True(t, c.SetTransform(WithScale(4)))
	assert.Equal(t, Transform{TranslateX: 7, TranslateY: 9, Scale: 4}, c.Transform())

	require.True(t, c.SetTransform(WithScale(99)))
	assert.Equal(t, 10.0, c.Transform().Scale)

	assert.False(t, c.SetTransform(WithScale(0)))
	assert.Equal(t, 10.0, c.Transform().Scale)
}

func TestAffineMatchesContentToScreen(t *testing.T) {
	vp := Size{Width: 640, Height: 480}
	tr := Transform{TranslateX: -33.5, TranslateY: 12.25, Scale: 1.75}
	m := tr.Affine(vp)
	for _, p := range []Point{Pt(0, 0), Pt(-100, 50), Pt(230.5, -17)} {
		want := tr.ContentToScreen(p, vp)
		got := m.Transform(f32.Pt(float32(p.X), float32(p.Y)))
		assert.InDelta(t, want.X, float64(got.X), 1e-3)
		assert.InDelta(t, want.Y, float64(got.Y), 1e-3)
	}
}

func TestTransformReadableWhileWriting(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = Bounds{Mode: BoundsNone}
	opts.MaxZoom = 1e6
	c := mustCanvas(t, Size{Width: 100, Height: 100}, Size{Width: 100, Height: 100}, opts)

	var (
		stop atomic.Bool
		torn atomic.Int64
		wg   sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for !stop.Load() {
			tr := c.Transform()
			if tr.TranslateX != tr.TranslateY || tr.Scale != tr.TranslateX+1 {
				torn.Add(1)
			}
		}
	}()
	for i := 1; i <= 5000; i++ {
		v := float64(i)
		c.SetTransform(WithTranslate(v, v), WithScale(v+1))
	}
	stop.Store(true)
	wg.Wait()
	assert.Zero(t, torn.Load())
}
