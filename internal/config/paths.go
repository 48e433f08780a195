// Package config resolves the daemon's runtime paths (control socket,
// PID file, single-instance lock, auth token) and its tunable runtime
// parameters, following the GetSurgeDir/GetRuntimeDir split used
// throughout the teacher's cmd and internal/config packages.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RuntimeDir returns the directory used for the control socket, PID
// file, lock file, and token file: $XDG_RUNTIME_DIR if set, else a
// per-uid fallback under the OS temp directory. The directory is
// created with 0700 permissions if missing.
func RuntimeDir() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = filepath.Join(os.TempDir(), fmt.Sprintf("downd-%d", os.Getuid()))
	}
	_ = os.MkdirAll(dir, 0o700)
	return dir
}

// SocketPath resolves the control socket path per spec.md §6's
// precedence: an explicit flag value wins, else $XDG_RUNTIME_DIR/downd.
func SocketPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(RuntimeDir(), "downd")
}

// PIDFilePath returns the path of the running daemon's PID file.
func PIDFilePath() string { return filepath.Join(RuntimeDir(), "downd.pid") }

// LockFilePath returns the path of the single-instance flock file.
func LockFilePath() string { return filepath.Join(RuntimeDir(), "downd.lock") }

// TokenFilePath returns the path of the bearer token file guarding the
// HTTP/SSE surface.
func TokenFilePath() string { return filepath.Join(RuntimeDir(), "downd.token") }
