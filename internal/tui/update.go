package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/catnapper321/downd/internal/tracker"
)

// Update handles incoming snapshotMsg/errMsg/tea.KeyMsg values. Key
// handling writes one control-socket line per spec.md §4.4's grammar
// and does not wait for the command to take effect — the next
// snapshotMsg will reflect it once the daemon processes it.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = msg.Width - 8
		return m, nil

	case snapshotMsg:
		m.connected = true
		m.lastErr = nil
		m.snap = tracker.Snapshot(msg)
		if n := len(m.snap.Queue); m.selected >= n {
			m.selected = n - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil

	case errMsg:
		m.lastErr = msg.err
		return m, nil

	case disconnectedMsg:
		m.connected = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "p":
			m.sendCommand("pause")
		case "c":
			m.sendCommand("cancel")
		case "r":
			m.sendCommand("resume")
		case "up":
			if m.selected > 0 {
				m.sendCommand(fmt.Sprintf("up %d", m.selected))
				m.selected--
			}
		case "down":
			if m.selected < len(m.snap.Queue)-1 {
				m.sendCommand(fmt.Sprintf("down %d", m.selected))
				m.selected++
			}
		case "d":
			if m.selected < len(m.snap.Queue) {
				m.sendCommand(fmt.Sprintf("delete %d", m.selected))
			}
		}
		return m, nil
	}
	return m, nil
}

// sendCommand fires a control line and ignores the result — a send
// failure is not shown in the UI (disconnectedMsg only reports the SSE
// stream ending), matching the source's lossy, non-awaiting publish
// philosophy (spec.md §9) applied symmetrically to the client side.
func (m Model) sendCommand(line string) {
	go func() { _ = m.client.SendCommand(line) }()
}
