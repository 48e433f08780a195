package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/catnapper321/downd/internal/tracker"
)

func TestViewRendersStateAndQueue(t *testing.T) {
	m := InitialModel(NewClient("", "", ""))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	title := "cool video"
	next, _ = m.Update(snapshotMsg(tracker.Snapshot{
		StateLabel: "Downloading",
		Title:      &title,
		Queue:      []string{"http://a"},
	}))
	m = next.(Model)

	out := m.View()
	require.True(t, strings.Contains(out, "Downloading"))
	require.True(t, strings.Contains(out, "cool video"))
	require.True(t, strings.Contains(out, "http://a"))
}

func TestViewBeforeFirstResizeShowsLoading(t *testing.T) {
	m := InitialModel(NewClient("", "", ""))
	require.Equal(t, "Loading...", m.View())
}

func TestViewHighlightsSelectedQueueRow(t *testing.T) {
	m := InitialModel(NewClient("", "", ""))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	next, _ = m.Update(snapshotMsg(tracker.Snapshot{Queue: []string{"http://a", "http://b"}}))
	m = next.(Model)

	out := m.View()
	require.True(t, strings.Contains(out, "> 0. http://a"))
	require.True(t, strings.Contains(out, "↑/↓ move"))
}
