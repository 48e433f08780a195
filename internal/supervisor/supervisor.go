// Package supervisor implements the state machine that owns the queue,
// spawns the downloader child for the head URL, and drives the inner
// Idle/Downloading/Hold cycle described in spec.md §4.6, ported from
// original_source/src/downloader.rs's run_idle/run_active/run_hold
// trio. It is the core the rest of the packages exist to serve.
package supervisor

import (
	"errors"
	"fmt"
	"time"

	"github.com/catnapper321/downd/internal/broadcast"
	"github.com/catnapper321/downd/internal/childproc"
	"github.com/catnapper321/downd/internal/command"
	"github.com/catnapper321/downd/internal/progress"
	"github.com/catnapper321/downd/internal/queue"
	"github.com/catnapper321/downd/internal/utils"
)

// DefaultStallDuration is STUCK_DURATION from spec.md §4.6.
const DefaultStallDuration = 15 * time.Second

// ErrCommandChannelClosed is returned by Run when the command channel is
// closed out from under the supervisor — spec.md §7's single Fatal
// condition ("Panic"). The caller should treat this as terminal.
var ErrCommandChannelClosed = errors.New("supervisor: command channel closed")

// SpawnFunc starts the downloader child for a URL. The default, wired in
// cmd/downd, is childproc.Spawn(childproc.YtdlpCommand(url)); tests
// substitute a stand-in satisfying the same childproc.Source contract,
// per spec.md §9's "polymorphic child streams → one interface".
type SpawnFunc func(url string) (childproc.Source, error)

// Supervisor is the C6 state machine. It owns the queue, the
// command-receive end, and the event-broadcast sender, per spec.md
// §4.6's preamble. The zero value is not usable; construct with New.
type Supervisor struct {
	queue         *queue.Queue
	commands      <-chan command.Command
	events        *broadcast.Bus[progress.Event]
	spawn         SpawnFunc
	stallDuration time.Duration

	current *string
}

// New constructs a Supervisor. commands must be closed by the caller
// only at shutdown — a closed channel is treated as fatal mid-run.
func New(q *queue.Queue, commands <-chan command.Command, events *broadcast.Bus[progress.Event], stallDuration time.Duration, spawn SpawnFunc) *Supervisor {
	if stallDuration <= 0 {
		stallDuration = DefaultStallDuration
	}
	return &Supervisor{
		queue:         q,
		commands:      commands,
		events:        events,
		spawn:         spawn,
		stallDuration: stallDuration,
	}
}

// subState is the InnerLoop's current sub-state; Hold is handled inline
// by runHold rather than tracked here, since it always resolves back to
// one of Idle or Downloading before control returns to Run.
type subState int

const (
	subIdle subState = iota
	subDownloading
)

// holdMode records what a Hold episode should do once Resume arrives:
// clear the current URL and return to Idle, or retry the same URL.
type holdMode int

const (
	holdClearOnResume holdMode = iota
	holdRetryOnResume
)

// Run executes the OuterLoop/InnerLoop pair of spec.md §4.6 until a
// fatal condition occurs. It does not return otherwise.
func (s *Supervisor) Run() error {
	state := subIdle
	for {
		switch state {
		case subIdle:
			next, fatal := s.runIdle()
			if fatal != nil {
				return fatal
			}
			state = next

		case subDownloading:
			direct, hm, fatal := s.runDownloading()
			if fatal != nil {
				return fatal
			}
			if direct {
				s.current = nil
				state = subIdle
				continue
			}
			next, fatal := s.runHold(hm)
			if fatal != nil {
				return fatal
			}
			state = next
		}
	}
}

func (s *Supervisor) emit(ev progress.Event) {
	s.events.Publish(ev)
}

func (s *Supervisor) applyQueueMutation(cmd command.Command) {
	switch cmd.Kind {
	case command.KindAddURL:
		s.queue.Push(cmd.URL)
	case command.KindMoveUp:
		s.queue.MoveUp(cmd.Index)
	case command.KindMoveDown:
		s.queue.MoveDown(cmd.Index)
	case command.KindDelete:
		s.queue.Remove(cmd.Index)
	}
}

// runIdle is the Idle sub-state: no current URL, waiting for either a
// queue head or a command. A Pause received here is handled in place
// (there is no URL to freeze) and resolves back into the same loop.
func (s *Supervisor) runIdle() (next subState, fatal error) {
	s.emit(progress.Idle())
	for {
		url, ready, wake := s.queue.Pull()
		if ready {
			s.current = &url
			s.emit(progress.QueueUpdate(s.queue.Snapshot()))
			return subDownloading, nil
		}

		select {
		case cmd, ok := <-s.commands:
			if !ok {
				return 0, ErrCommandChannelClosed
			}
			switch cmd.Kind {
			case command.KindPause:
				s.emit(progress.Hold("User hold"))
				if _, fatal := s.runHold(holdClearOnResume); fatal != nil {
					return 0, fatal
				}
				s.emit(progress.Idle())
			case command.KindCancel:
				// No current URL to cancel in Idle; per spec.md §4.6 this
				// still clears any retained current URL as an edge case.
				s.current = nil
			case command.KindResume:
				// No-op: nothing is being held.
			default:
				if cmd.IsQueueMutating() {
					s.applyQueueMutation(cmd)
					s.emit(progress.QueueUpdate(s.queue.Snapshot()))
				}
			}
		case <-wake:
			// Spurious wakeups are permitted; loop re-pulls at the top.
		}
	}
}

// runDownloading is the Downloading sub-state. It spawns the child for
// s.current, drains its merged line stream, and multiplexes the stall
// timer, the child's exit, and commands, per spec.md §4.6's child
// lifecycle. It returns either direct=true (go straight to Idle, no
// Hold) or a holdMode describing what Resume should do afterward.
func (s *Supervisor) runDownloading() (direct bool, hm holdMode, fatalErr error) {
	url := *s.current
	src, err := s.spawn(url)
	if err != nil {
		utils.Debug("supervisor: failed to spawn child for %q: %v", url, err)
		s.emit(progress.Hold("IO Error!"))
		return false, holdClearOnResume, nil
	}

	lines := src.Lines()
	waitCh := src.Wait()
	// wait stays nil until lines has returned end-of-stream, so the
	// select below cannot observe child exit before the line stream is
	// drained — spec.md §4.6 step 3's "child_wait is only armed once
	// line_stream has returned end-of-stream", mirrored from the Rust
	// original's `if !reading_out` gate (downloader.rs:297). Since
	// lines is buffered, closure alone isn't drainage: a nil select
	// case is never chosen, so arming wait only once lines itself goes
	// nil (immediately after the final read off it) is what enforces
	// the ordering.
	var wait <-chan childproc.ExitStatus
	stallTimer := time.NewTimer(s.stallDuration)
	defer stallTimer.Stop()
	stuck := false

	// override, once set by a user Pause/Cancel or a read error, takes
	// precedence over whatever exit status the OS reports — spec.md
	// §4.6 step 4: "the pre-recorded user_exitreason overrides whatever
	// exit status the OS reports."
	var override string // "" | "paused" | "cancelled" | "ioerror"

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				lines = nil
				wait = waitCh
				continue
			}
			stallTimer.Reset(s.stallDuration)
			stuck = false
			if line.Err != nil {
				override = "ioerror"
				lines = nil
				wait = waitCh
				_ = src.Kill()
				continue
			}
			ev, perr := progress.ParseLine(line.Text)
			if perr != nil {
				continue
			}
			s.emit(ev)

		case status := <-wait:
			switch override {
			case "paused":
				s.emit(progress.Hold("User hold"))
				return false, holdRetryOnResume, nil
			case "cancelled":
				return true, 0, nil
			case "ioerror":
				s.emit(progress.Hold("IO Error!"))
				return false, holdClearOnResume, nil
			default:
				switch {
				case status.ExitCode != nil && *status.ExitCode == 0:
					return true, 0, nil
				case status.ExitCode != nil:
					s.emit(progress.Hold(fmt.Sprintf("Error code %d", *status.ExitCode)))
					return false, holdClearOnResume, nil
				case status.WaitErr != nil:
					s.emit(progress.Hold("IO Error!"))
					return false, holdClearOnResume, nil
				default:
					s.emit(progress.Hold("Downloader killed"))
					return false, holdClearOnResume, nil
				}
			}

		case <-stallTimer.C:
			// Emit only on the false→true transition; the timer is not
			// re-armed until a line resets it, per spec.md §9.
			if !stuck {
				stuck = true
				s.emit(progress.Stuck())
			}

		case cmd, ok := <-s.commands:
			if !ok {
				_ = src.Kill()
				return false, 0, ErrCommandChannelClosed
			}
			switch cmd.Kind {
			case command.KindPause:
				override = "paused"
				lines = nil
				wait = waitCh
				_ = src.Kill()
			case command.KindCancel:
				override = "cancelled"
				lines = nil
				wait = waitCh
				_ = src.Kill()
			case command.KindResume:
				// No-op: nothing is being held yet.
			default:
				if cmd.IsQueueMutating() {
					s.applyQueueMutation(cmd)
					s.emit(progress.QueueUpdate(s.queue.Snapshot()))
				}
			}
		}
	}
}

// runHold is the Hold sub-state: consume only commands until Resume,
// per spec.md §4.6. Queue mutations are still honored; the current URL
// is frozen until Resume, except that Cancel clears it in either mode,
// in which case Resume returns to Idle rather than retrying.
func (s *Supervisor) runHold(mode holdMode) (next subState, fatal error) {
	for {
		cmd, ok := <-s.commands
		if !ok {
			return 0, ErrCommandChannelClosed
		}
		switch cmd.Kind {
		case command.KindResume:
			if mode == holdRetryOnResume && s.current != nil {
				return subDownloading, nil
			}
			s.current = nil
			return subIdle, nil
		case command.KindCancel:
			// Per spec.md §9's open question, this does not itself leave
			// Hold — the user must still send Resume.
			s.current = nil
		default:
			if cmd.IsQueueMutating() {
				s.applyQueueMutation(cmd)
				s.emit(progress.QueueUpdate(s.queue.Snapshot()))
			}
		}
	}
}
