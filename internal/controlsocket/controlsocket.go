// Package controlsocket is the Unix-domain transport for control
// commands — the socket plumbing spec.md §1 calls out of scope, with
// the in-scope line grammar (internal/command) layered on top. Ported
// from original_source/src/unixsocket.rs's server/handle_stream/
// prep_socket_path trio.
package controlsocket

import (
	"bufio"
	"io"
	"net"
	"os"

	"github.com/catnapper321/downd/internal/command"
	"github.com/catnapper321/downd/internal/utils"
)

// Listen removes any stale socket file at path, binds a new Unix
// listener, and accepts connections until the listener is closed,
// handing each parsed Command to sink. Unparseable lines are logged and
// discarded per spec.md §4.4/§6; it never terminates the accept loop.
func Listen(path string, sink chan<- command.Command) (net.Listener, error) {
	prepSocketPath(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	go acceptLoop(ln, sink)
	return ln, nil
}

// prepSocketPath unlinks a stale socket file, ignoring a missing file.
func prepSocketPath(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.Debug("controlsocket: could not remove stale socket %q: %v", path, err)
	}
}

func acceptLoop(ln net.Listener, sink chan<- command.Command) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			// Listener closed (shutdown) or fatal accept error: either
			// way there is nothing left to accept.
			return
		}
		go handleConn(conn, sink)
	}
}

func handleConn(conn net.Conn, sink chan<- command.Command) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		cmd, err := command.Parse(line)
		if err != nil {
			utils.Debug("controlsocket: %v", err)
			continue
		}
		sink <- cmd
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		utils.Debug("controlsocket: connection read error: %v", err)
	}
}
