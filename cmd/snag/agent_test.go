package main

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"go.klb.dev/snag/internal/capture"
	"go.klb.dev/snag/internal/coordinator"
	"go.klb.dev/snag/internal/message"
	"go.klb.dev/snag/internal/notify"
	"go.klb.dev/snag/internal/task"
	"go.klb.dev/snag/internal/wire"
)

type stubCapturer struct{ result capture.Result }

func (s stubCapturer) Capture() capture.Result { return s.result }

type stubCreator struct {
	mu      sync.Mutex
	calls   int
	outcome task.Outcome
}

func (s *stubCreator) Create(_ context.Context, _, _ string) task.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.outcome
}

func (s *stubCreator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubTokens struct{ token string }

func (s stubTokens) Read() (string, error) { return s.token, nil }

// grabOverIPC drives one GRAB request through handleConn and returns the reply.
func grabOverIPC(t *testing.T, a *agent, req *message.Message) *message.Message {
	t.Helper()
	client, server := net.Pipe()
	go a.handleConn(server)

	wc := wire.New(client)
	defer wc.Close()

	if err := wc.WriteMsg(req); err != nil {
		t.Fatalf("WriteMsg: %v", err)
	}
	wc.SetReadDeadline(5 * time.Second)
	reply, err := wc.ReadMsg()
	if err != nil {
		t.Fatalf("ReadMsg: %v", err)
	}
	return reply
}

func TestHandleConnGrabDeliversAndReportsOK(t *testing.T) {
	creator := &stubCreator{outcome: task.Outcome{Kind: task.Created}}
	a := &agent{coord: coordinator.New(
		stubCapturer{result: capture.Result{Kind: capture.Success, Text: "Buy milk"}},
		creator, stubTokens{token: "tok"}, notify.Discard{},
	)}

	reply := grabOverIPC(t, a, &message.Message{Type: message.TypeGrab})
	if !reply.OK {
		t.Errorf("reply.OK = false (%s), want true", reply.Detail)
	}
	if creator.callCount() != 1 {
		t.Errorf("Create calls = %d, want 1", creator.callCount())
	}
	if reply.Text != "" {
		t.Errorf("reply.Text = %q, want empty without Print", reply.Text)
	}
}

func TestHandleConnGrabWithoutTokenReportsFailure(t *testing.T) {
	creator := &stubCreator{}
	a := &agent{coord: coordinator.New(
		stubCapturer{result: capture.Result{Kind: capture.Success, Text: "x"}},
		creator, stubTokens{}, notify.Discard{},
	)}

	reply := grabOverIPC(t, a, &message.Message{Type: message.TypeGrab})
	if reply.OK {
		t.Error("reply.OK = true, want false when no token is stored")
	}
	if reply.Detail == "" {
		t.Error("reply.Detail empty, want the token remedy")
	}
	if creator.callCount() != 0 {
		t.Errorf("Create calls = %d, want 0", creator.callCount())
	}
}

func TestHandleConnGrabPrintSkipsDelivery(t *testing.T) {
	creator := &stubCreator{}
	a := &agent{coord: coordinator.New(
		stubCapturer{result: capture.Result{Kind: capture.Success, Text: "selection"}},
		creator, stubTokens{}, notify.Discard{},
	)}

	reply := grabOverIPC(t, a, &message.Message{Type: message.TypeGrab, Print: true})
	if !reply.OK {
		t.Errorf("reply.OK = false (%s), want true for print grab", reply.Detail)
	}
	if reply.Text != "selection" {
		t.Errorf("reply.Text = %q, want %q", reply.Text, "selection")
	}
	if creator.callCount() != 0 {
		t.Errorf("Create calls = %d, want 0", creator.callCount())
	}
}

func TestHandleConnGrabFaultCarriesKind(t *testing.T) {
	a := &agent{coord: coordinator.New(
		stubCapturer{result: capture.Result{Kind: capture.Timeout}},
		&stubCreator{}, stubTokens{token: "tok"}, notify.Discard{},
	)}

	reply := grabOverIPC(t, a, &message.Message{Type: message.TypeGrab})
	if reply.OK {
		t.Error("reply.OK = true, want false for a timed-out capture")
	}
	if reply.Result != "timeout" {
		t.Errorf("reply.Result = %q, want %q", reply.Result, "timeout")
	}
}
