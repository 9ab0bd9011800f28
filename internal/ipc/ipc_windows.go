//go:build windows

package ipc

import (
	"net"
	"os"

	"github.com/Microsoft/go-winio"
)

const pipeName = `\\.\pipe\snag`

// SocketPath returns the control pipe name ($SNAG_SOCKET overrides).
func SocketPath() string {
	if s := os.Getenv("SNAG_SOCKET"); s != "" {
		return s
	}
	return pipeName
}

func dial() (net.Conn, error) {
	return winio.DialPipe(SocketPath(), nil)
}

func listen() (net.Listener, error) {
	return winio.ListenPipe(SocketPath(), nil)
}
