package wire

import (
	"bytes"
	"net"
	"testing"

	"go.klb.dev/snag/internal/message"
)

func TestRoundTrip(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	ca, cb := New(a), New(b)

	go func() {
		_ = ca.WriteMsg(&message.Message{Type: message.TypeGrab, Print: true})
	}()

	got, err := cb.ReadMsg()
	if err != nil {
		t.Fatalf("ReadMsg: %v", err)
	}
	if got.Type != message.TypeGrab || !got.Print {
		t.Errorf("ReadMsg = %+v, want GRAB with Print", got)
	}
}

func TestReadRejectsOversizedMessageMidStream(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	// A line that exceeds the cap and never terminates; the reader must
	// reject it without waiting for a newline.
	go func() {
		chunk := bytes.Repeat([]byte{'a'}, 64*1024)
		for {
			if _, err := a.Write(chunk); err != nil {
				return
			}
		}
	}()

	if _, err := New(b).ReadMsg(); err == nil {
		t.Error("oversized message accepted, want error")
	}
}

func TestReadRejectsGarbageLine(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	go func() {
		_, _ = a.Write([]byte("{broken\n"))
	}()

	if _, err := New(b).ReadMsg(); err == nil {
		t.Error("ReadMsg of garbage succeeded, want error")
	}
}
