// Package rate implements the rolling byte-throughput estimator,
// ported from original_source/src/rollingrate.rs::RollingRate.
package rate

import (
	"container/list"
	"time"
)

type sample struct {
	at    time.Time
	bytes uint64
}

// RollingRate estimates bytes/second from a monotonically non-decreasing
// series of byte counts. Samples older than maxElapsed are evicted on
// query; a non-monotonic push resets the whole series.
type RollingRate struct {
	samples    *list.List // of sample, oldest at Front
	minElapsed time.Duration
	maxElapsed time.Duration
	now        func() time.Time
}

// New creates a RollingRate with the given retention window parameters.
func New(minElapsed, maxElapsed time.Duration) *RollingRate {
	return &RollingRate{
		samples:    list.New(),
		minElapsed: minElapsed,
		maxElapsed: maxElapsed,
		now:        time.Now,
	}
}

// Push records a new byte count. If it is smaller than the previous
// sample, the entire series is reset before the new sample is recorded.
func (r *RollingRate) Push(bytes uint64) {
	if back := r.samples.Back(); back != nil {
		if bytes < back.Value.(sample).bytes {
			r.Reset()
		}
	}
	r.samples.PushBack(sample{at: r.now(), bytes: bytes})
}

// Reset discards all retained samples.
func (r *RollingRate) Reset() {
	r.samples.Init()
}

// Rate returns the estimated bytes/second, or false if fewer than two
// samples remain after eviction, or the oldest retained sample is not
// yet old enough (age < minElapsed).
func (r *RollingRate) Rate() (float64, bool) {
	for {
		front := r.samples.Front()
		if front == nil {
			return 0, false
		}
		oldest := front.Value.(sample)
		if r.now().Sub(oldest.at) > r.maxElapsed {
			r.samples.Remove(front)
			continue
		}
		if r.samples.Len() < 2 {
			return 0, false
		}
		if r.now().Sub(oldest.at) < r.minElapsed {
			return 0, false
		}
		newest := r.samples.Back().Value.(sample)
		elapsedBytes := float64(newest.bytes - oldest.bytes)
		elapsedTime := newest.at.Sub(oldest.at).Seconds()
		if elapsedTime <= 0 {
			return 0, false
		}
		return elapsedBytes / elapsedTime, true
	}
}
