package app

import "sync/atomic"

// StreamHealth is the flag shared between the stream subscriber (which marks
// it down on transport failure) and the watchdog (which marks it up after a
// successful rebuild). It is owned state passed by handle, not a package
// global.
type StreamHealth struct {
	up atomic.Bool
}

func (h *StreamHealth) MarkUp()   { h.up.Store(true) }
func (h *StreamHealth) MarkDown() { h.up.Store(false) }
func (h *StreamHealth) Up() bool  { return h.up.Load() }
