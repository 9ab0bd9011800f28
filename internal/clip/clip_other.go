//go:build !darwin

package clip

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.design/x/clipboard"
)

// pollInterval is how often the background watcher diffs clipboard content.
// These platforms expose no mutation counter, so foreign changes are only
// visible as content changes.
const pollInterval = 100 * time.Millisecond

type pollBoard struct {
	rev  atomic.Uint64
	done chan struct{}

	mu   sync.Mutex
	last []byte
}

// New returns a clipboard board whose revision counter is process-local:
// bumped synchronously by our own mutations, and by a background poller
// whenever another process changes the text content.
func New() (Board, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	b := &pollBoard{done: make(chan struct{})}
	b.last = clipboard.Read(clipboard.FmtText)
	go b.poll()
	return b, nil
}

func (b *pollBoard) poll() {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := clipboard.Read(clipboard.FmtText)
			b.mu.Lock()
			if !bytes.Equal(text, b.last) {
				b.last = text
				b.rev.Add(1)
			}
			b.mu.Unlock()
		}
	}
}

func (b *pollBoard) Revision() uint64 { return b.rev.Load() }

// Snapshot reads the payload directly rather than waiting for the poller,
// folding any not-yet-observed foreign change into the counter first.
func (b *pollBoard) Snapshot() Snapshot {
	text := clipboard.Read(clipboard.FmtText)
	b.mu.Lock()
	if !bytes.Equal(text, b.last) {
		b.last = text
		b.rev.Add(1)
	}
	rev := b.rev.Load()
	b.mu.Unlock()
	return Snapshot{Revision: rev, Text: string(text), HasText: len(text) > 0}
}

func (b *pollBoard) set(text []byte) (uint64, error) {
	clipboard.Write(clipboard.FmtText, text)
	got := clipboard.Read(clipboard.FmtText)
	if !bytes.Equal(got, text) {
		return b.rev.Load(), fmt.Errorf("clipboard write not acknowledged")
	}
	b.mu.Lock()
	b.last = got
	rev := b.rev.Add(1)
	b.mu.Unlock()
	return rev, nil
}

func (b *pollBoard) Clear() (uint64, error)            { return b.set(nil) }
func (b *pollBoard) Write(text string) (uint64, error) { return b.set([]byte(text)) }
func (b *pollBoard) Close()                            { close(b.done) }
