package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := TitleStyle.Render(fmt.Sprintf(" downd — %s ", m.snap.StateLabel))

	var body strings.Builder
	if !m.connected {
		body.WriteString(lipgloss.NewStyle().Foreground(ColorError).Render("disconnected from daemon"))
		if m.lastErr != nil {
			body.WriteString(": " + m.lastErr.Error())
		}
		body.WriteString("\n")
	}

	stateStyle := lipgloss.NewStyle().Foreground(stateColor(m.snap.StateLabel)).Bold(true)
	body.WriteString(stateStyle.Render(m.snap.StateLabel))
	if m.snap.Title != nil {
		body.WriteString("  " + *m.snap.Title)
	}
	body.WriteString("\n\n")

	if m.snap.Progress != nil {
		body.WriteString(m.bar.ViewAs(*m.snap.Progress))
		body.WriteString("\n")
	}

	body.WriteString(fmt.Sprintf("downloaded: %s", humanize.Bytes(m.snap.DownloadedBytes)))
	if m.snap.TotalBytes != nil {
		body.WriteString(fmt.Sprintf(" / %s", humanize.Bytes(*m.snap.TotalBytes)))
	}
	body.WriteString("\n")

	if m.snap.RateHumanized != nil {
		body.WriteString("rate: " + *m.snap.RateHumanized)
	}
	if m.snap.ETASeconds != nil {
		body.WriteString(fmt.Sprintf("   eta: %ds", *m.snap.ETASeconds))
	}
	body.WriteString("\n\n")

	body.WriteString("queue:\n")
	if len(m.snap.Queue) == 0 {
		body.WriteString(HelpStyle.Render("  (empty)"))
	}
	for i, u := range m.snap.Queue {
		line := fmt.Sprintf("  %d. %s", i, u)
		if i == m.selected {
			body.WriteString(QueueItemStyle.Bold(true).Foreground(ColorPrimary).Render("> " + line[2:]))
		} else {
			body.WriteString(QueueItemStyle.Render(line))
		}
		body.WriteString("\n")
	}

	panel := PanelStyle.Width(m.width - 4).Render(body.String())
	help := HelpStyle.Render("p pause · c cancel · r resume · ↑/↓ move · d delete · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, panel, help)
}
