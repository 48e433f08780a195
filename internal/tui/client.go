// Package tui implements `downd watch`, a terminal client
// that subscribes to a running daemon's SSE feed and renders tracker
// snapshots, forwarding keypresses as control-socket lines. It is
// structurally modeled on surge/internal/tui's tea.Model shape, scaled
// down to downd's single-current-download domain, and on
// surge/cmd/connect.go's split between a remote event stream and a
// local tea.Program.
package tui

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/catnapper321/downd/internal/tracker"
)

// Client talks to a running daemon: it streams tracker.Snapshot values
// from its SSE endpoint and writes control-socket lines for keypresses.
type Client struct {
	baseURL    string
	token      string
	socketPath string
	httpClient *http.Client
}

// NewClient builds a Client for the daemon at baseURL (e.g.
// "http://127.0.0.1:3000") whose control socket is at socketPath.
func NewClient(baseURL, token, socketPath string) *Client {
	return &Client{baseURL: baseURL, token: token, socketPath: socketPath, httpClient: http.DefaultClient}
}

// snapshotMsg and errMsg are the tea.Msg variants the event-stream
// goroutine sends into the program, per surge/cmd/connect.go's
// `go func() { for msg := range stream { p.Send(msg) } }()` pattern.
type snapshotMsg tracker.Snapshot
type errMsg struct{ err error }
type disconnectedMsg struct{}

// StreamEvents connects to /events and forwards each decoded snapshot
// to send until ctx is cancelled or the connection drops.
func (c *Client) StreamEvents(ctx context.Context, send func(tea.Msg)) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		send(errMsg{err})
		return
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		send(errMsg{err})
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		send(errMsg{fmt.Errorf("events stream returned %s", resp.Status)})
		return
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var snap tracker.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			continue
		}
		send(snapshotMsg(snap))
	}
	send(disconnectedMsg{})
}

// SendCommand writes one control-socket line to the daemon's Unix
// socket, the same grammar internal/command parses.
func (c *Client) SendCommand(line string) error {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write(append(bytes.TrimRight([]byte(line), "\n"), '\n'))
	return err
}
