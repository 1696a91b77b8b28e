package harness

import "time"

// Timer returns a timestamp in milliseconds. Successive readings never
// decrease, so their difference is an elapsed duration.
type Timer interface {
	Now() float64
}

// MonotonicTimer reads the runtime's monotonic clock relative to the
// moment it was created.
type MonotonicTimer struct {
	origin time.Time
}

// NewMonotonicTimer creates a MonotonicTimer starting at zero.
func NewMonotonicTimer() *MonotonicTimer {
	return &MonotonicTimer{origin: time.Now()}
}

// Now returns milliseconds since the timer was created.
func (t *MonotonicTimer) Now() float64 {
	return float64(time.Since(t.origin).Nanoseconds()) / 1e6
}
