package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/catnapper321/downd/internal/config"
	"github.com/catnapper321/downd/internal/utils"
)

// clipCmd polls the system clipboard for http(s):// strings and adds
// each new one to a running daemon's queue, an idiomatic expression of
// surge's GeneralSettings.ClipboardMonitor feature (SPEC_FULL.md §3.5),
// repurposed as its own subcommand since downd has no always-on TUI of
// its own to carry a background toggle.
var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "watch the clipboard and queue http(s) URLs it finds",
	Run: func(cmd *cobra.Command, args []string) {
		socketFlag, _ := cmd.Flags().GetString("socket")
		socketPath := config.SocketPath(socketFlag)

		if !clipboard.Unsupported {
			runClipWatch(socketPath)
			return
		}
		fmt.Fprintln(os.Stderr, "clipboard access is unsupported on this platform")
		os.Exit(1)
	},
}

func runClipWatch(socketPath string) {
	var last string
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		text, err := clipboard.ReadAll()
		if err != nil || text == last {
			continue
		}
		last = text
		text = strings.TrimSpace(text)
		if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
			continue
		}
		if err := sendAddURL(socketPath, text); err != nil {
			utils.Debug("clip: failed to queue %q: %v", text, err)
			continue
		}
		fmt.Printf("queued: %s\n", text)
	}
}

func sendAddURL(socketPath, url string) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = fmt.Fprintf(conn, "add %s\n", url)
	return err
}
