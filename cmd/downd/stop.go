package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
)

// stopCmd sends SIGTERM to the PID recorded at startup, as
// surge/cmd/server.go::serverStopCmd does.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "stop the running daemon",
	Run: func(cmd *cobra.Command, args []string) {
		pid := readPID()
		if pid == 0 {
			fmt.Println("No running downd daemon found (PID file missing).")
			return
		}
		process, err := os.FindProcess(pid)
		if err != nil {
			fmt.Printf("Error finding process: %v\n", err)
			return
		}
		if err := process.Signal(syscall.SIGTERM); err != nil {
			fmt.Printf("Error stopping daemon: %v\n", err)
			return
		}
		fmt.Printf("Sent stop signal to process %d\n", pid)
	},
}
