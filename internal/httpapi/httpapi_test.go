package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/catnapper321/downd/internal/broadcast"
	"github.com/catnapper321/downd/internal/command"
	"github.com/catnapper321/downd/internal/tracker"
)

func newTestServer(token string) (*Server, *broadcast.Bus[tracker.Snapshot], chan command.Command) {
	bus := broadcast.New[tracker.Snapshot](16)
	cmds := make(chan command.Command, 8)
	return New(bus, cmds, token), bus, cmds
}

func TestControlRequiresToken(t *testing.T) {
	s, _, _ := newTestServer("secret")
	req := httptest.NewRequest(http.MethodPost, "/control", strings.NewReader("pause\n"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestControlParsesAndForwardsCommand(t *testing.T) {
	s, _, cmds := newTestServer("secret")
	req := httptest.NewRequest(http.MethodPost, "/control", strings.NewReader("pause\n"))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case cmd := <-cmds:
		require.Equal(t, command.Pause(), cmd)
	case <-time.After(time.Second):
		t.Fatal("command was not forwarded")
	}
}

func TestControlDiscardsUnparseableLineWithoutError(t *testing.T) {
	s, _, cmds := newTestServer("")
	req := httptest.NewRequest(http.MethodPost, "/control", strings.NewReader("not-a-command\n"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case cmd := <-cmds:
		t.Fatalf("unexpected command forwarded: %+v", cmd)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventsStreamsPublishedSnapshots(t *testing.T) {
	s, bus, _ := newTestServer("")
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.ServeHTTP(rec, req)
		close(done)
	}()

	// Give handleEvents time to subscribe before publishing.
	time.Sleep(20 * time.Millisecond)
	bus.Publish(tracker.Snapshot{StateLabel: "Downloading", DownloadedBytes: 42, Queue: []string{}})

	require.Eventually(t, func() bool {
		return strings.Contains(rec.Body.String(), `"downloaded_bytes":42`)
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestQueueEndpointReturnsQueueField(t *testing.T) {
	s, bus, _ := newTestServer("")
	req := httptest.NewRequest(http.MethodGet, "/queue", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.ServeHTTP(rec, req)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	bus.Publish(tracker.Snapshot{StateLabel: "Idle", Queue: []string{"http://a", "http://b"}})
	<-done

	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"http://a", "http://b"}, got)
}
