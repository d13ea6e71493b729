package batch

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Callbacks may run on any goroutine.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock adapts a clock.Clock (wall clock or clock.Mock) to Clock.
type SystemClock struct {
	c clock.Clock
}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() SystemClock {
	return SystemClock{c: clock.New()}
}

// FromClock wraps an existing clock.Clock, e.g. clock.NewMock().
func FromClock(c clock.Clock) SystemClock {
	return SystemClock{c: c}
}

func (s SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return s.c.AfterFunc(d, f)
}
