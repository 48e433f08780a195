package tracker

import (
	"testing"

	"github.com/catnapper321/downd/internal/progress"
)

func u64(v uint64) *uint64 { return &v }
func str(s string) *string { return &s }

func TestIdleIsInitialState(t *testing.T) {
	tr := New()
	snap := tr.Snapshot()
	if snap.StateLabel != "Idle" {
		t.Fatalf("StateLabel = %q, want Idle", snap.StateLabel)
	}
}

func TestStartingSetsTitle(t *testing.T) {
	tr := New()
	tr.Update(progress.Starting(str("My Video")))
	snap := tr.Snapshot()
	if snap.StateLabel != "Starting" || snap.Title == nil || *snap.Title != "My Video" {
		t.Fatalf("got %+v", snap)
	}
}

func TestDownloadingUpdatesProgress(t *testing.T) {
	tr := New()
	tr.Update(progress.Downloading(100, u64(1000), nil, nil))
	snap := tr.Snapshot()
	if snap.StateLabel != "Downloading" {
		t.Fatalf("StateLabel = %q", snap.StateLabel)
	}
	if snap.Progress == nil || *snap.Progress != 0.1 {
		t.Fatalf("Progress = %v, want 0.1", snap.Progress)
	}
	if snap.DownloadedBytes != 100 || *snap.TotalBytes != 1000 {
		t.Fatalf("got %+v", snap)
	}
}

func TestETAOnlyWhenRateAndTotalPresent(t *testing.T) {
	tr := New()
	// First sample: no rate yet (needs >=2 samples and minElapsed).
	tr.Update(progress.Downloading(0, u64(1000), nil, nil))
	snap := tr.Snapshot()
	if snap.ETASeconds != nil {
		t.Fatalf("ETA should be absent before a rate is available, got %v", snap.ETASeconds)
	}
	if snap.RateBytesPerSec != nil {
		t.Fatalf("rate should be absent before minElapsed/2 samples, got %v", snap.RateBytesPerSec)
	}
}

func TestMovedDoesNotChangeStateLabel(t *testing.T) {
	tr := New()
	tr.Update(progress.Starting(str("T")))
	tr.Update(progress.Downloading(500, u64(1000), nil, nil))
	before := tr.Snapshot().StateLabel
	tr.Update(progress.Moved(str("T")))
	after := tr.Snapshot().StateLabel
	if before != after {
		t.Fatalf("Moved changed state label from %q to %q", before, after)
	}
}

func TestStuckClearsProgressAndRate(t *testing.T) {
	tr := New()
	tr.Update(progress.Downloading(500, u64(1000), nil, nil))
	tr.Update(progress.Stuck())
	snap := tr.Snapshot()
	if snap.StateLabel != "Stuck" || snap.Progress != nil {
		t.Fatalf("got %+v", snap)
	}
	if snap.RateBytesPerSec != nil || snap.ETASeconds != nil {
		t.Fatalf("rate/eta should be cleared on Stuck, got %+v", snap)
	}
}

func TestIdleClearsFields(t *testing.T) {
	tr := New()
	tr.Update(progress.Starting(str("T")))
	tr.Update(progress.Downloading(500, u64(1000), nil, nil))
	tr.Update(progress.Idle())
	snap := tr.Snapshot()
	if snap.StateLabel != "Idle" || snap.Title != nil || snap.Progress != nil {
		t.Fatalf("got %+v", snap)
	}
	if snap.RateHumanized != nil {
		t.Fatalf("rate_humanized should be cleared, got %v", snap.RateHumanized)
	}
}

func TestHoldStateLabelIncludesReason(t *testing.T) {
	tr := New()
	tr.Update(progress.Hold("Error code 2"))
	snap := tr.Snapshot()
	if snap.StateLabel != "Holding: Error code 2" {
		t.Fatalf("StateLabel = %q", snap.StateLabel)
	}
}

func TestQueueUpdateSetsQueue(t *testing.T) {
	tr := New()
	tr.Update(progress.QueueUpdate([]string{"a", "b"}))
	snap := tr.Snapshot()
	if len(snap.Queue) != 2 || snap.Queue[0] != "a" {
		t.Fatalf("got %+v", snap.Queue)
	}
}

func TestProgressAlwaysClampedOrAbsent(t *testing.T) {
	tr := New()
	tr.Update(progress.Downloading(5000, u64(1000), nil, nil)) // over 100%
	snap := tr.Snapshot()
	if snap.Progress == nil || *snap.Progress != 1.0 {
		t.Fatalf("Progress = %v, want clamped to 1.0", snap.Progress)
	}
}
