package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/catnapper321/downd/internal/config"
	"github.com/catnapper321/downd/internal/tui"
)

// watchCmd attaches a Bubble Tea TUI to a running daemon's SSE feed,
// sending its keypresses as commands over the control socket, per
// SPEC_FULL.md §3.4.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "attach a terminal UI to a running daemon",
	Run: func(cmd *cobra.Command, args []string) {
		port := readPort()
		if port == 0 {
			port, _ = cmd.Flags().GetInt("port")
		}
		socketFlag, _ := cmd.Flags().GetString("socket")
		socketPath := config.SocketPath(socketFlag)

		baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
		client := tui.NewClient(baseURL, ensureAuthToken(), socketPath)

		m := tui.InitialModel(client)
		p := tea.NewProgram(m, tea.WithAltScreen())

		ctx, cancel := context.WithCancel(context.Background())
		go client.StreamEvents(ctx, p.Send)

		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			cancel()
			os.Exit(1)
		}
		cancel()
	},
}
