package task

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSendsBearerAndBody(t *testing.T) {
	var gotAuth, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotContent = req.Content
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	out := New(srv.URL).Create(context.Background(), "Buy milk", "tok123")
	if out.Kind != Created {
		t.Fatalf("Kind = %v, want Created (detail: %s)", out.Kind, out.Detail)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
	if gotContent != "Buy milk" {
		t.Errorf("content = %q, want %q", gotContent, "Buy milk")
	}
}

func TestCreateRejectsWhitespaceTextWithoutCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer srv.Close()

	out := New(srv.URL).Create(context.Background(), "  \n\t ", "tok")
	if out.Kind != ValidationError {
		t.Fatalf("Kind = %v, want ValidationError", out.Kind)
	}
	if calls != 0 {
		t.Errorf("endpoint calls = %d, want 0", calls)
	}
}

func TestCreateRejectsEmptyTokenWithoutCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer srv.Close()

	out := New(srv.URL).Create(context.Background(), "text", "")
	if out.Kind != ValidationError {
		t.Fatalf("Kind = %v, want ValidationError", out.Kind)
	}
	if calls != 0 {
		t.Errorf("endpoint calls = %d, want 0", calls)
	}
}

func TestCreateMapsNon2xxToTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	out := New(srv.URL).Create(context.Background(), "text", "tok")
	if out.Kind != TransportError {
		t.Fatalf("Kind = %v, want TransportError", out.Kind)
	}
	if out.Detail == "" {
		t.Error("Detail is empty, want a human-readable cause")
	}
}

func TestCreateMapsNetworkFailureToTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	out := New(srv.URL).Create(context.Background(), "text", "tok")
	if out.Kind != TransportError {
		t.Fatalf("Kind = %v, want TransportError", out.Kind)
	}
}
