package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
)

// statusCmd reports whether a daemon is running and on what port, as
// surge/cmd/server.go::serverStatusCmd does.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "check whether the daemon is running",
	Run: func(cmd *cobra.Command, args []string) {
		pid := readPID()
		if pid == 0 {
			fmt.Println("downd is NOT running.")
			return
		}
		process, err := os.FindProcess(pid)
		if err != nil {
			fmt.Printf("downd is NOT running (process %d not found).\n", pid)
			return
		}
		if err := process.Signal(syscall.Signal(0)); err != nil {
			fmt.Printf("downd is NOT running (process %d dead).\n", pid)
			return
		}
		fmt.Printf("downd is running (PID: %d, Port: %d).\n", pid, readPort())
	},
}
