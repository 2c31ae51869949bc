package physics

import "gonum.org/v1/gonum/spatial/r2"

// TrailConfig sets the capacity of a body's trail and how many integration
// steps pass between recorded samples.
type TrailConfig struct {
	Capacity int
	Interval int
}

// DefaultTrail keeps the last 100 samples, one every third step.
var DefaultTrail = TrailConfig{Capacity: 100, Interval: 3}

// Trail is a fixed-capacity FIFO of past positions. Once full, each push
// evicts the oldest sample.
type Trail struct {
	buf   []r2.Vec
	head  int
	count int
}

func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{buf: make([]r2.Vec, capacity)}
}

func (t *Trail) Push(p r2.Vec) {
	if len(t.buf) == 0 {
		return
	}
	idx := (t.head + t.count) % len(t.buf)
	if t.count == len(t.buf) {
		t.buf[t.head] = p
		t.head = (t.head + 1) % len(t.buf)
		return
	}
	t.buf[idx] = p
	t.count++
}

func (t *Trail) Len() int { return t.count }

// Points returns a copy of the samples, oldest first.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	return out
}

// Oldest returns the earliest retained sample.
func (t *Trail) Oldest() (r2.Vec, bool) {
	if t.count == 0 {
		return r2.Vec{}, false
	}
	return t.buf[t.head], true
}
