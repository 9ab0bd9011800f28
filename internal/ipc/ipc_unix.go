//go:build !windows

package ipc

import (
	"net"
	"os"
	"path/filepath"
)

// SocketPath returns the control socket path:
//
//   - $SNAG_SOCKET when set
//   - $XDG_RUNTIME_DIR/snag.sock when XDG_RUNTIME_DIR is set
//   - $TMPDIR/snag.sock otherwise (macOS and friends)
func SocketPath() string {
	if s := os.Getenv("SNAG_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "snag.sock")
	}
	return filepath.Join(os.TempDir(), "snag.sock")
}

func dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}

func listen() (net.Listener, error) {
	path := SocketPath()
	// Remove stale socket from a previous run.
	_ = os.Remove(path)
	return net.Listen("unix", path)
}
