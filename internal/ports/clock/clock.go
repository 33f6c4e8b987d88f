package clock

import "time"

// Clock is the time source for server-assigned timestamps.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
