package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/catnapper321/downd/internal/tracker"
)

// Model is the `downd watch` root model: a single current-download
// view plus the queue behind it, rather than surge's multi-download
// list, since downd never runs more than one child at a time.
//
// The SSE subscription itself is not owned by Model — the caller wires
// it with `go client.StreamEvents(ctx, program.Send)` before
// program.Run(), the same split surge/cmd/connect.go uses between a
// remote event stream and a local tea.Program. Model only reacts to the
// resulting messages.
type Model struct {
	client *Client

	snap      tracker.Snapshot
	bar       progress.Model
	width     int
	height    int
	lastErr   error
	connected bool
	selected  int
}

// InitialModel builds the starting Model for a given Client.
func InitialModel(client *Client) Model {
	return Model{
		client: client,
		bar:    progress.New(progress.WithDefaultGradient()),
		snap:   tracker.Snapshot{StateLabel: "Idle", Queue: []string{}},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
