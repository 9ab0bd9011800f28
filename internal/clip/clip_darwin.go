//go:build darwin

package clip

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
//
// NSInteger snag_changeCount() {
//     return [[NSPasteboard generalPasteboard] changeCount];
// }
import "C"

import (
	"fmt"

	"golang.design/x/clipboard"
)

type darwinBoard struct{}

// New returns the macOS clipboard board. The revision counter is backed by
// NSPasteboard changeCount, which the OS bumps on every mutation regardless
// of which process performed it.
func New() (Board, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return darwinBoard{}, nil
}

func (darwinBoard) Revision() uint64 { return uint64(C.snag_changeCount()) }

func (b darwinBoard) Snapshot() Snapshot {
	rev := b.Revision()
	text := clipboard.Read(clipboard.FmtText)
	return Snapshot{Revision: rev, Text: string(text), HasText: len(text) > 0}
}

func (b darwinBoard) set(text []byte) (uint64, error) {
	before := b.Revision()
	clipboard.Write(clipboard.FmtText, text)
	rev := b.Revision()
	if rev <= before {
		return rev, fmt.Errorf("pasteboard changeCount did not advance past %d", before)
	}
	return rev, nil
}

func (b darwinBoard) Clear() (uint64, error)            { return b.set(nil) }
func (b darwinBoard) Write(text string) (uint64, error) { return b.set([]byte(text)) }
func (darwinBoard) Close()                              {}
