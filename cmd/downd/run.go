package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/catnapper321/downd/internal/broadcast"
	"github.com/catnapper321/downd/internal/childproc"
	"github.com/catnapper321/downd/internal/command"
	"github.com/catnapper321/downd/internal/config"
	"github.com/catnapper321/downd/internal/controlsocket"
	"github.com/catnapper321/downd/internal/httpapi"
	"github.com/catnapper321/downd/internal/progress"
	"github.com/catnapper321/downd/internal/queue"
	"github.com/catnapper321/downd/internal/supervisor"
	"github.com/catnapper321/downd/internal/tracker"
	"github.com/catnapper321/downd/internal/utils"
)

var runCmd = &cobra.Command{
	Use:   "run [url]...",
	Short: "start the daemon in the foreground",
	Run:   runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = globalVerbosity
	}
	utils.SetVerbosity(verbosity)

	lock, isMaster, err := AcquireLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error acquiring lock: %v\n", err)
		os.Exit(1)
	}
	if !isMaster {
		fmt.Fprintln(os.Stderr, "Error: downd is already running.")
		os.Exit(1)
	}
	defer func() {
		if err := ReleaseLock(lock); err != nil {
			utils.Debug("run: error releasing lock: %v", err)
		}
	}()

	port, _ := cmd.Flags().GetInt("port")
	socketFlag, _ := cmd.Flags().GetString("socket")
	socketPath := config.SocketPath(socketFlag)

	savePID()
	savePort(port)
	defer removePID()
	defer removePort()

	q := queue.New()
	for _, u := range args {
		q.Push(u)
	}

	commands := make(chan command.Command, 256)
	events := broadcast.New[progress.Event](broadcast.DefaultCapacity)
	snapshots := broadcast.New[tracker.Snapshot](broadcast.DefaultCapacity)

	spawn := func(url string) (childproc.Source, error) {
		return childproc.Spawn(childproc.YtdlpCommand(url))
	}

	sup := supervisor.New(q, commands, events, config.DefaultRuntimeConfig().StallDuration, spawn)

	go runTracker(events, snapshots)

	ln, err := controlsocket.Listen(socketPath, commands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not bind control socket %q: %v\n", socketPath, err)
		os.Exit(1)
	}
	defer ln.Close()

	httpLn, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not bind port %d: %v\n", port, err)
		os.Exit(1)
	}
	server := httpapi.New(snapshots, commands, ensureAuthToken())
	go func() {
		if err := http.Serve(httpLn, server); err != nil {
			utils.Debug("run: http server exited: %v", err)
		}
	}()

	go func() {
		if err := sup.Run(); err != nil {
			utils.Error("run: supervisor exited: %v", err)
			os.Exit(1)
		}
	}()

	fmt.Printf("downd running: socket=%s http=127.0.0.1:%d\n", socketPath, port)
	fmt.Println("Press Ctrl+C to exit.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\nShutting down...")
}

// runTracker is the Tracker/rendering task: it consumes progress.Event values and
// republishes rendered tracker.Snapshot values to a second broadcast
// for SSE subscribers, per spec.md §4.8.
func runTracker(events *broadcast.Bus[progress.Event], snapshots *broadcast.Bus[tracker.Snapshot]) {
	sub := events.Subscribe()
	defer events.Unsubscribe(sub)
	t := tracker.New()
	for ev := range sub.C() {
		t.Update(ev)
		snapshots.Publish(t.Snapshot())
	}
}
