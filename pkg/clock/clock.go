package clock

import (
	"sync/atomic"
	"time"
)

// Clock provides the nanosecond counter used to stamp trades. NowNS must be
// monotonically non-decreasing across calls.
type Clock interface {
	NowNS() uint64
}

// System is a Clock backed by the wall clock. Readings are clamped so a
// wall-clock step backwards never produces a decreasing stamp.
type System struct {
	last atomic.Uint64
}

// NewSystem creates a System clock.
func NewSystem() *System {
	return &System{}
}

// NowNS returns the current time in nanoseconds since the Unix epoch.
func (s *System) NowNS() uint64 {
	now := uint64(time.Now().UnixNano())
	for {
		last := s.last.Load()
		if now <= last {
			return last
		}
		if s.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// Manual is a Clock advanced explicitly, for tests.
type Manual struct {
	now uint64
}

// NewManual creates a Manual clock starting at start.
func NewManual(start uint64) *Manual {
	return &Manual{now: start}
}

// NowNS returns the current manual reading.
func (m *Manual) NowNS() uint64 {
	return m.now
}

// Advance moves the clock forward by d nanoseconds.
func (m *Manual) Advance(d uint64) {
	m.now += d
}
