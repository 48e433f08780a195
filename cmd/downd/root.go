package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the CLI's reported version. Unlike surge/cmd's Version it
// is a const, so it cannot be overridden at link time (downd has no
// release-tagging pipeline of its own).
const Version = "0.1.0"

var globalVerbosity int

var rootCmd = &cobra.Command{
	Use:   "downd [url]...",
	Short: "a single-host yt-dlp download supervisor",
	Long:  "downd manages a queue of media URLs and runs yt-dlp on them one at a time.",
	Run: func(cmd *cobra.Command, args []string) {
		runDaemon(cmd, args)
	},
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&globalVerbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().IntP("port", "p", 3000, "HTTP/SSE port")
	rootCmd.PersistentFlags().StringP("socket", "s", "", "control socket path (default $XDG_RUNTIME_DIR/downd)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(tokenCmd)
}
