// Package poll implements a bounded condition wait with an injectable clock.
//
// The system clipboard has no change-notification primitive, so the capture
// pipeline has to sample it. A short interval keeps latency low; the deadline
// bounds the worst case when nothing ever changes.
package poll

import "time"

// Clock abstracts time so the wait loops are deterministic under test.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// System returns the production Clock.
func System() Clock { return systemClock{} }

// Until samples cond every interval until it returns true or deadline
// elapses, and reports whether cond became true. cond is sampled once
// immediately, so a condition that already holds costs no sleep. The wait
// yields between samples rather than blocking, keeping the caller's event
// loop responsive.
func Until(c Clock, interval, deadline time.Duration, cond func() bool) bool {
	limit := c.Now().Add(deadline)
	for {
		if cond() {
			return true
		}
		if !c.Now().Before(limit) {
			return false
		}
		c.Sleep(interval)
	}
}
