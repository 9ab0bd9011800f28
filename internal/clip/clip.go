// Package clip provides a revision-counting view of the system clipboard.
// Build constraints select the revision source:
//
//	clip_darwin.go — NSPasteboard changeCount via cgo (true OS counter)
//	clip_other.go  — process-local counter fed by our own writes plus a
//	                 background content-diff poller
//
// The revision is the only concurrency control the capture pipeline has:
// the clipboard is a single shared cell with no transactions, so every
// mutation decision is gated on "has the counter moved since I last looked".
package clip

// Snapshot is an immutable capture of clipboard state at a point in time.
// HasText is false when the clipboard is empty or holds non-text content.
type Snapshot struct {
	Revision uint64
	Text     string
	HasText  bool
}

// Board is the clipboard surface used by the capture pipeline.
// Implementations are safe for concurrent use.
type Board interface {
	// Snapshot returns the current revision together with the text payload,
	// if any.
	Snapshot() Snapshot

	// Clear empties the clipboard and returns the resulting revision.
	// An error means the clipboard did not acknowledge the mutation, which
	// callers must treat as an unrecoverable clipboard-access fault.
	Clear() (uint64, error)

	// Write replaces the clipboard contents with text and returns the
	// resulting revision.
	Write(text string) (uint64, error)

	// Revision returns the current revision counter: monotonically
	// non-decreasing for the lifetime of this process, bumped on every
	// observed clipboard mutation. Valid for change detection only, never
	// for ordering across process restarts.
	Revision() uint64

	// Close stops background change tracking.
	Close()
}
