// Package tracker implements the pure state machine that turns a stream
// of progress.Event values into a rendered snapshot, ported from
// original_source/src/tracker.rs::Tracker.
package tracker

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/catnapper321/downd/internal/progress"
	"github.com/catnapper321/downd/internal/rate"
)

// Tracker's rolling-rate window parameters, matching tracker.rs::new.
const (
	minElapsed = 1500 * time.Millisecond
	maxElapsed = 15 * time.Second
)

// Snapshot is the externally observable tracker state, per spec.md §3.
type Snapshot struct {
	StateLabel      string   `json:"state_label"`
	Title           *string  `json:"title,omitempty"`
	Progress        *float64 `json:"progress,omitempty"`
	RateBytesPerSec *float64 `json:"rate_bytes_per_sec,omitempty"`
	RateHumanized   *string  `json:"rate_humanized,omitempty"`
	TotalBytes      *uint64  `json:"total_bytes,omitempty"`
	DownloadedBytes uint64   `json:"downloaded_bytes"`
	ETASeconds      *uint64  `json:"eta_seconds,omitempty"`
	Queue           []string `json:"queue"`
}

// Tracker consumes progress.Event values and maintains the current
// Snapshot. It is not safe for concurrent use from multiple goroutines;
// it is meant to be driven from a single consumer task, per spec.md §5.
type Tracker struct {
	snap        Snapshot
	rollingRate *rate.RollingRate
}

// New creates an idle Tracker.
func New() *Tracker {
	return &Tracker{
		snap:        Snapshot{StateLabel: "Idle", Queue: []string{}},
		rollingRate: rate.New(minElapsed, maxElapsed),
	}
}

// Update applies one progress.Event to the tracker, per the transition
// table in spec.md §4.7.
func (t *Tracker) Update(ev progress.Event) {
	switch ev.Kind {
	case progress.KindStarting:
		t.snap.StateLabel = "Starting"
		t.snap.Title = ev.Title

	case progress.KindDownloading:
		t.rollingRate.Push(ev.DownloadedBytes)
		t.snap.StateLabel = "Downloading"
		if p, ok := ev.Progress(); ok {
			t.snap.Progress = &p
		} else {
			t.snap.Progress = nil
		}
		t.snap.TotalBytes = ev.TotalBytes
		t.snap.DownloadedBytes = ev.DownloadedBytes
		t.recalculate()

	case progress.KindMoved:
		// State label is intentionally not changed here — spec.md §9's
		// open question: the next Downloading or Idle event drives it.
		t.rollingRate.Reset()
		t.clearRate()

	case progress.KindStuck:
		t.snap.StateLabel = "Stuck"
		t.snap.Progress = nil
		t.rollingRate.Reset()
		t.clearRate()

	case progress.KindIdle:
		t.snap.StateLabel = "Idle"
		t.snap.Title = nil
		t.snap.Progress = nil
		t.rollingRate.Reset()
		t.clearRate()

	case progress.KindHold:
		t.snap.StateLabel = "Holding: " + ev.Reason
		t.rollingRate.Reset()
		t.clearRate()

	case progress.KindQueueUpdate:
		t.snap.Queue = ev.Queue
	}
}

// Snapshot returns a copy of the current snapshot.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

func (t *Tracker) clearRate() {
	t.snap.RateBytesPerSec = nil
	t.snap.RateHumanized = nil
	t.snap.ETASeconds = nil
}

// recalculate updates the rate, humanized rate, and ETA fields after a
// Downloading event, per tracker.rs::calculate.
func (t *Tracker) recalculate() {
	r, ok := t.rollingRate.Rate()
	if !ok {
		t.clearRate()
		return
	}
	t.snap.RateBytesPerSec = &r
	h := humanize.Bytes(uint64(r)) + "/s"
	t.snap.RateHumanized = &h
	t.snap.ETASeconds = nil

	if t.snap.TotalBytes != nil && *t.snap.TotalBytes >= t.snap.DownloadedBytes {
		remaining := *t.snap.TotalBytes - t.snap.DownloadedBytes
		eta := uint64(float64(remaining) / r)
		t.snap.ETASeconds = &eta
	}
}
