// Package ipc provides the local control channel used by snag CLI
// sub-commands (grab/status) to talk to a running agent instead of
// building their own capture pipeline.
//
// The channel carries newline-delimited JSON messages (see internal/wire
// and internal/message) over a Unix domain socket on unix-likes and a
// named pipe on Windows. The agent listens; sub-commands probe for it and
// fall back to a local one-shot pipeline if it is absent.
package ipc

import "net"

// Dial connects to the agent's control socket. Returns an error when no
// agent is listening.
func Dial() (net.Conn, error) {
	return dial()
}

// Listen creates the agent's control socket, replacing a stale one left
// by a previous (crashed) run.
func Listen() (net.Listener, error) {
	return listen()
}

// IsRunning reports whether an agent appears to be listening on the
// control socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	conn, err := dial()
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
