// Package coordinator runs the trigger→capture→deliver→notify cycle.
//
// The coordinator is a three-state machine (Idle → Capturing → Delivering →
// Idle) with at-most-one operation in flight: a trigger arriving while an
// operation runs is dropped, never queued. Every fault path notifies the
// user and returns the machine to Idle.
package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"go.klb.dev/snag/internal/capture"
	"go.klb.dev/snag/internal/notify"
	"go.klb.dev/snag/internal/task"
)

// State of the coordinator. Triggers are accepted only in Idle.
type State int32

const (
	Idle State = iota
	Capturing
	Delivering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Delivering:
		return "delivering"
	default:
		return "unknown"
	}
}

// Capturer runs one capture attempt. Implemented by capture.Capturer.
type Capturer interface {
	Capture() capture.Result
}

// TaskCreator delivers captured text. Implemented by task.Client.
type TaskCreator interface {
	Create(ctx context.Context, text, token string) task.Outcome
}

// TokenReader supplies the delivery credential. Implemented by cred.Store.
type TokenReader interface {
	Read() (string, error)
}

// Stats counts operations since the coordinator was created.
type Stats struct {
	Triggers uint64
	Dropped  uint64
	Captured uint64
	Empty    uint64
	Timeouts uint64
	Denied   uint64
	NoToken  uint64
	Created  uint64
	Failed   uint64
}

// Report describes one completed (or dropped) operation.
type Report struct {
	OpID    string
	Dropped bool
	Capture capture.Result
	Outcome *task.Outcome // nil unless delivery ran
}

// deliveryTimeout is an outer bound on the delivery step; the task client
// carries its own tighter transport timeout.
const deliveryTimeout = 15 * time.Second

// Coordinator serializes capture operations and reports their outcomes.
// Safe for concurrent triggering from any goroutine.
type Coordinator struct {
	caps   Capturer
	tasks  TaskCreator
	tokens TokenReader
	notes  notify.Notifier

	state atomic.Int32

	mu    sync.Mutex
	stats Stats
}

// New returns an idle Coordinator.
func New(caps Capturer, tasks TaskCreator, tokens TokenReader, notes notify.Notifier) *Coordinator {
	return &Coordinator{caps: caps, tasks: tasks, tokens: tokens, notes: notes}
}

// State returns the current state.
func (c *Coordinator) State() State { return State(c.state.Load()) }

// Stats returns a copy of the operation counters.
func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Coordinator) count(f func(*Stats)) {
	c.mu.Lock()
	f(&c.stats)
	c.mu.Unlock()
}

// begin claims the machine for a new operation. The returned release must
// run when the operation ends, whatever happened.
func (c *Coordinator) begin() bool {
	c.count(func(s *Stats) { s.Triggers++ })
	if !c.state.CompareAndSwap(int32(Idle), int32(Capturing)) {
		c.count(func(s *Stats) { s.Dropped++ })
		slog.Debug("trigger dropped, operation already in flight")
		return false
	}
	return true
}

// Trigger runs one full capture-and-deliver operation if the coordinator is
// idle. A trigger that arrives mid-operation is dropped, not queued.
func (c *Coordinator) Trigger() Report {
	if !c.begin() {
		return Report{Dropped: true}
	}
	defer c.state.Store(int32(Idle))

	op := uuid.NewString()[:8]
	log := slog.With("op", op)
	log.Info("capture requested")

	rep := Report{OpID: op, Capture: c.caps.Capture()}
	if !c.noteCapture(log, rep.Capture) {
		return rep
	}

	token, err := c.tokens.Read()
	if err != nil {
		log.Error("token read failed", "err", err)
		token = ""
	}
	if token == "" {
		c.count(func(s *Stats) { s.NoToken++ })
		log.Warn("no API token configured")
		c.notes.Notify("Token missing", "No API token configured. Run: snag token set")
		return rep
	}

	c.state.Store(int32(Delivering))
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	out := c.tasks.Create(ctx, rep.Capture.Text, token)
	rep.Outcome = &out

	switch out.Kind {
	case task.Created:
		c.count(func(s *Stats) { s.Created++ })
		log.Info("task created")
		c.notes.Notify("Task created", preview(rep.Capture.Text))
	default:
		c.count(func(s *Stats) { s.Failed++ })
		log.Warn("delivery failed", "kind", out.Kind.String(), "detail", out.Detail)
		c.notes.Notify("Delivery failed", out.Detail)
	}
	return rep
}

// CaptureOnly runs a capture without delivering, for callers that want the
// text itself. It holds the same at-most-one-in-flight claim as Trigger.
func (c *Coordinator) CaptureOnly() Report {
	if !c.begin() {
		return Report{Dropped: true}
	}
	defer c.state.Store(int32(Idle))

	op := uuid.NewString()[:8]
	log := slog.With("op", op)
	log.Info("capture requested", "deliver", false)

	rep := Report{OpID: op, Capture: c.caps.Capture()}
	c.noteCapture(log, rep.Capture)
	return rep
}

// noteCapture records and reports the capture result, returning true when
// the operation may proceed to delivery.
func (c *Coordinator) noteCapture(log *slog.Logger, res capture.Result) bool {
	switch res.Kind {
	case capture.PermissionDenied:
		c.count(func(s *Stats) { s.Denied++ })
		log.Warn("capture blocked: input access not granted")
		c.notes.Notify("Permission needed", "Grant snag input access in your system settings, then try again.")
		return false
	case capture.Timeout:
		c.count(func(s *Stats) { s.Timeouts++ })
		log.Warn("capture timed out")
		c.notes.Notify("Capture timed out", "No selection was copied. Select some text and try again.")
		return false
	case capture.Empty:
		c.count(func(s *Stats) { s.Empty++ })
		log.Info("capture produced no text")
		c.notes.Notify("Nothing captured", "The selection produced no text.")
		return false
	}
	c.count(func(s *Stats) { s.Captured++ })
	log.Info("selection captured", "chars", len(res.Text))
	return true
}

// preview trims text to a notification-sized excerpt.
func preview(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
