package canvas

import "sync/atomic"

// state holds the authoritative transform. Writes replace the whole record so
// a reader on another goroutine never observes a half-updated transform.
type state struct {
	cur     atomic.Pointer[Transform]
	minZoom float64
	maxZoom float64

	onTransform []func(Transform)
	onZoom      []func(float64)
}

func newState(initial Transform, minZoom, maxZoom float64) *state {
	s := &state{minZoom: minZoom, maxZoom: maxZoom}
	s.cur.Store(&initial)
	return s
}

func (s *state) load() Transform { return *s.cur.Load() }

// store clamps the scale, writes next and notifies listeners synchronously.
// Non-finite input is dropped and the last good transform kept. It reports
// whether the stored transform changed.
func (s *state) store(next Transform) bool {
	if !next.valid() {
		return false
	}
	next.Scale = min(max(next.Scale, s.minZoom), s.maxZoom)
	prev := s.load()
	if prev == next {
		return false
	}
	s.cur.Store(&next)
	for _, fn := range s.onTransform {
		fn(next)
	}
	if prev.Scale != next.Scale {
		for _, fn := range s.onZoom {
			fn(next.Scale)
		}
	}
	return true
}
