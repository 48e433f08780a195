package controlsocket

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/catnapper321/downd/internal/command"
)

func TestListenAcceptsAndParsesCommands(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "downd")
	sink := make(chan command.Command, 8)

	ln, err := Listen(sock, sink)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer ln.Close()

	conn, err := net.Dial("unix", sock)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("add http://x\nnonsense\npause\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	first := mustReceive(t, sink)
	if first.Kind != command.KindAddURL || first.URL != "http://x" {
		t.Fatalf("got %+v", first)
	}
	second := mustReceive(t, sink)
	if second.Kind != command.KindPause {
		t.Fatalf("got %+v, want Pause (nonsense line should be skipped)", second)
	}
}

func TestListenRemovesStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "downd")
	sink := make(chan command.Command, 1)

	ln1, err := Listen(sock, sink)
	if err != nil {
		t.Fatalf("first Listen failed: %v", err)
	}
	ln1.Close()

	// The old socket file is still present on disk; a second Listen on
	// the same path must unlink it rather than fail with "address in use".
	ln2, err := Listen(sock, sink)
	if err != nil {
		t.Fatalf("second Listen failed: %v", err)
	}
	defer ln2.Close()
}

func mustReceive(t *testing.T, sink <-chan command.Command) command.Command {
	t.Helper()
	select {
	case c := <-sink:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
		return command.Command{}
	}
}
