package main

import (
	"strings"
	"testing"

	"go.klb.dev/snag/internal/message"
)

func TestReportGrabOK(t *testing.T) {
	reply := &message.Message{Type: message.TypeGrabResult, OK: true, Result: "success"}
	if err := reportGrab(reply, false); err != nil {
		t.Errorf("reportGrab = %v, want nil", err)
	}
}

func TestReportGrabDroppedMessageHasNoEmptyKind(t *testing.T) {
	reply := &message.Message{
		Type:   message.TypeGrabResult,
		Detail: "an operation is already in flight",
	}
	err := reportGrab(reply, false)
	if err == nil {
		t.Fatal("reportGrab = nil, want error for a dropped operation")
	}
	got := err.Error()
	if strings.Contains(got, "  ") || strings.Contains(got, "()") {
		t.Errorf("error %q leaks the empty result kind", got)
	}
	if !strings.Contains(got, "already in flight") {
		t.Errorf("error %q missing the detail", got)
	}
}

func TestReportGrabFailureWithDetail(t *testing.T) {
	reply := &message.Message{
		Type:   message.TypeGrabResult,
		Result: "success",
		Detail: "endpoint returned 503 Service Unavailable",
	}
	err := reportGrab(reply, false)
	if err == nil {
		t.Fatal("reportGrab = nil, want error")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q missing the delivery detail", err)
	}
}

func TestReportGrabAgentError(t *testing.T) {
	reply := &message.Message{Type: message.TypeError, Error: "unknown message type"}
	if err := reportGrab(reply, false); err == nil {
		t.Error("reportGrab = nil, want error for an ERROR reply")
	}
}
