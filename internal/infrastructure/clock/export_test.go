package clock

import "time"

func NewSystemWithSource(now func() time.Time) *System {
	return &System{now: now}
}
