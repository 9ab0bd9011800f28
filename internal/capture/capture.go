// Package capture implements the selection-capture pipeline: snapshot the
// clipboard, clear it, inject a copy chord at the foreground application,
// wait (bounded) for the clipboard to change, extract the text, and restore
// the prior clipboard afterwards unless the user got there first.
//
// The foreground application is an uncontrollable external process and the
// clipboard is the only channel to it, so every step tolerates failure and
// the restore is gated on the revision counter: user intent always wins
// over our housekeeping.
package capture

import (
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/snag/internal/clip"
	"go.klb.dev/snag/internal/input"
	"go.klb.dev/snag/internal/poll"
)

// Kind classifies the outcome of one capture attempt.
type Kind int

const (
	// Success: non-empty text was captured.
	Success Kind = iota
	// Empty: the clipboard changed but carried no text.
	Empty
	// Timeout: the clipboard never changed within the deadline, or a
	// clear/inject step faulted.
	Timeout
	// PermissionDenied: the OS input-access permission is not granted.
	// No clipboard mutation occurred.
	PermissionDenied
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Timeout:
		return "timeout"
	case PermissionDenied:
		return "permission-denied"
	default:
		return "unknown"
	}
}

// Result is produced exactly once per capture attempt.
type Result struct {
	Kind Kind
	Text string
}

// Options bound one attempt. Zero fields fall back to the defaults.
type Options struct {
	// PollInterval is the clipboard sampling period during the wait.
	PollInterval time.Duration
	// Deadline bounds the whole wait for the copy to land.
	Deadline time.Duration
	// SettleDelay is waited after a revision change before reading: the OS
	// can publish the revision bump slightly before the payload is
	// fully committed.
	SettleDelay time.Duration
	// RestoreDelay is how long after the attempt the prior clipboard is
	// put back, giving an intervening user copy time to be observed.
	RestoreDelay time.Duration
}

const (
	defaultPollInterval = 10 * time.Millisecond
	defaultDeadline     = 2 * time.Second
	defaultSettleDelay  = 50 * time.Millisecond
	defaultRestoreDelay = 200 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.Deadline <= 0 {
		o.Deadline = defaultDeadline
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = defaultSettleDelay
	}
	if o.RestoreDelay <= 0 {
		o.RestoreDelay = defaultRestoreDelay
	}
	return o
}

// Capturer drives capture attempts. It is not safe for concurrent use; the
// coordinator serializes calls to Capture.
type Capturer struct {
	board clip.Board
	sim   input.Simulator
	trust input.Authorizer
	clock poll.Clock
	opts  Options

	// after schedules the deferred restore; tests swap it out to fire
	// restores deterministically.
	after func(d time.Duration, f func())

	restores sync.WaitGroup
}

// New returns a Capturer over the given board, simulator and authorizer.
func New(board clip.Board, sim input.Simulator, trust input.Authorizer, opts Options) *Capturer {
	return &Capturer{
		board: board,
		sim:   sim,
		trust: trust,
		clock: poll.System(),
		opts:  opts.withDefaults(),
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Capture runs one full attempt and returns exactly one Result. It blocks
// the caller for at most Deadline + PollInterval + SettleDelay; the restore
// runs later on its own timer.
func (c *Capturer) Capture() Result {
	if !c.trust.Trusted() {
		c.trust.Prompt()
		return Result{Kind: PermissionDenied}
	}

	before := c.board.Snapshot()

	r0, err := c.board.Clear()
	if err != nil || r0 <= before.Revision {
		slog.Warn("clipboard clear did not take", "err", err)
		c.restoreNow(before)
		return Result{Kind: Timeout}
	}

	if err := c.sim.CopyGesture(); err != nil {
		slog.Warn("copy gesture failed", "err", err)
		c.restoreNow(before)
		return Result{Kind: Timeout}
	}

	changed := poll.Until(c.clock, c.opts.PollInterval, c.opts.Deadline, func() bool {
		return c.board.Revision() > r0
	})
	if !changed {
		slog.Debug("clipboard unchanged within deadline", "deadline", c.opts.Deadline)
		c.scheduleRestore(before, c.board.Revision())
		return Result{Kind: Timeout}
	}

	c.clock.Sleep(c.opts.SettleDelay)

	snap := c.board.Snapshot()
	c.scheduleRestore(before, snap.Revision)

	if !snap.HasText || snap.Text == "" {
		return Result{Kind: Empty}
	}
	return Result{Kind: Success, Text: snap.Text}
}

// Wait blocks until all scheduled restores have run. Short-lived callers
// (one-shot grabs) use it so the process does not exit with a restore
// still pending.
func (c *Capturer) Wait() { c.restores.Wait() }

// restoreNow puts the prior text back immediately after a mutation fault,
// best-effort: data safety beats error propagation here.
func (c *Capturer) restoreNow(before clip.Snapshot) {
	if !before.HasText {
		return
	}
	if _, err := c.board.Write(before.Text); err != nil {
		slog.Warn("clipboard restore failed", "err", err)
	}
}

// scheduleRestore arranges for the prior clipboard text to be written back
// after RestoreDelay, unless the revision has advanced past rPost by then —
// that would mean the user changed the clipboard in the interim, and their
// copy must not be clobbered.
func (c *Capturer) scheduleRestore(before clip.Snapshot, rPost uint64) {
	if !before.HasText {
		// Nothing to restore to; leave whatever the capture produced.
		return
	}
	c.restores.Add(1)
	c.after(c.opts.RestoreDelay, func() {
		defer c.restores.Done()
		if rNow := c.board.Revision(); rNow > rPost {
			slog.Debug("clipboard superseded by user, not restoring",
				"observed", rNow, "post_capture", rPost)
			return
		}
		if _, err := c.board.Write(before.Text); err != nil {
			slog.Warn("clipboard restore failed", "err", err)
			return
		}
		slog.Debug("clipboard restored")
	})
}
