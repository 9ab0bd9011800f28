package poll

import (
	"testing"
	"time"
)

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	now    time.Time
	sleeps int
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(d time.Duration) {
	f.now = f.now.Add(d)
	f.sleeps++
}

func TestUntilImmediate(t *testing.T) {
	c := &fakeClock{}
	ok := Until(c, 10*time.Millisecond, time.Second, func() bool { return true })
	if !ok {
		t.Fatal("Until() = false, want true")
	}
	if c.sleeps != 0 {
		t.Errorf("sleeps = %d, want 0 for an already-true condition", c.sleeps)
	}
}

func TestUntilEventually(t *testing.T) {
	c := &fakeClock{}
	n := 0
	ok := Until(c, 10*time.Millisecond, time.Second, func() bool {
		n++
		return n == 5
	})
	if !ok {
		t.Fatal("Until() = false, want true")
	}
	if c.sleeps != 4 {
		t.Errorf("sleeps = %d, want 4", c.sleeps)
	}
}

func TestUntilDeadline(t *testing.T) {
	c := &fakeClock{}
	start := c.now
	ok := Until(c, 10*time.Millisecond, 100*time.Millisecond, func() bool { return false })
	if ok {
		t.Fatal("Until() = true, want false on deadline")
	}
	elapsed := c.now.Sub(start)
	if elapsed > 100*time.Millisecond+10*time.Millisecond {
		t.Errorf("elapsed = %v, want at most deadline + one interval", elapsed)
	}
}

func TestUntilZeroDeadlineSamplesOnce(t *testing.T) {
	c := &fakeClock{}
	samples := 0
	ok := Until(c, 10*time.Millisecond, 0, func() bool {
		samples++
		return false
	})
	if ok {
		t.Fatal("Until() = true, want false")
	}
	if samples != 1 {
		t.Errorf("samples = %d, want 1", samples)
	}
}
