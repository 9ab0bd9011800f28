// Package message defines the snag agent control protocol.
//
// Messages are newline-delimited JSON exchanged over the local control
// socket (see internal/ipc). Each message is exactly one line: <json>\n.
package message

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of message.
type Type string

const (
	TypeGrab           Type = "GRAB"
	TypeGrabResult     Type = "GRAB_RESULT"
	TypeStatus         Type = "STATUS"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeError          Type = "ERROR"
)

// AgentStatus is the payload of a STATUS_RESPONSE.
type AgentStatus struct {
	Version   string    `json:"version"`
	State     string    `json:"state"`
	Hotkey    string    `json:"hotkey"`
	Endpoint  string    `json:"endpoint"`
	HasToken  bool      `json:"has_token"`
	StartedAt time.Time `json:"started_at"`

	Triggers uint64 `json:"triggers"`
	Dropped  uint64 `json:"dropped"`
	Captured uint64 `json:"captured"`
	Empty    uint64 `json:"empty"`
	Timeouts uint64 `json:"timeouts"`
	Denied   uint64 `json:"denied"`
	Created  uint64 `json:"created"`
	Failed   uint64 `json:"failed"`
}

// Message is the wire envelope.
type Message struct {
	// Always present
	Type Type `json:"type"`

	// GRAB — Print requests the captured text back instead of delivery.
	Print bool `json:"print,omitempty"`

	// GRAB_RESULT
	OK     bool   `json:"ok,omitempty"`
	Result string `json:"result,omitempty"` // capture result kind
	Text   string `json:"text,omitempty"`   // captured text, only when Print was set
	Detail string `json:"detail,omitempty"`

	// STATUS_RESPONSE
	Status *AgentStatus `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}
