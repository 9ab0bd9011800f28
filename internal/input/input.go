// Package input injects the platform copy chord into the global input
// stream and gates it behind the OS input-access permission.
package input

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-vgo/robotgo"
)

// Simulator issues a synthetic "copy" gesture at whatever application holds
// input focus. It has no knowledge of what, if anything, will respond; a
// returned error covers event construction/injection only — "nothing was
// selected" is invisible at this layer.
type Simulator interface {
	CopyGesture() error
}

// Authorizer answers whether this process may observe and inject global
// input, and can ask the OS to prompt the user for that access.
type Authorizer interface {
	Trusted() bool
	Prompt()
}

// keyDelay spaces key-down and key-up to emulate human timing; some
// applications coalesce or drop chords delivered back-to-back.
const keyDelay = 30 * time.Millisecond

type robotSimulator struct{}

// NewSimulator returns the robotgo-backed Simulator.
func NewSimulator() Simulator { return robotSimulator{} }

func (robotSimulator) CopyGesture() error {
	mod := "ctrl"
	if runtime.GOOS == "darwin" {
		mod = "cmd"
	}
	if err := robotgo.KeyToggle("c", "down", mod); err != nil {
		return fmt.Errorf("copy chord down: %w", err)
	}
	time.Sleep(keyDelay)
	if err := robotgo.KeyToggle("c", "up", mod); err != nil {
		return fmt.Errorf("copy chord up: %w", err)
	}
	return nil
}
