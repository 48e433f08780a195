// Package queue implements the supervisor's URL queue: an ordered,
// mutation-aware sequence with a single armed wakeup hook, modeled on
// original_source/src/queue.rs's AsyncQueue<T>. The items live in a
// mutex-protected slice (MoveUp/MoveDown/Remove need indexed access);
// only the wakeup hook is a channel, closed once by the next Push.
package queue

import "sync"

// Queue is an ordered sequence of URLs. The zero value is not usable;
// construct with New. Only one goroutine may call Pull at a time —
// behavior with concurrent pullers is undefined, matching spec.md §4.1.
type Queue struct {
	mu    sync.Mutex
	items []string
	// wake is armed when a Pull observed an empty queue; it is closed
	// exactly once by the next Push, waking the parked puller.
	wake chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends a URL to the tail. If a consumer is parked waiting for
// the queue to become non-empty, it is woken.
func (q *Queue) Push(url string) {
	q.mu.Lock()
	q.items = append(q.items, url)
	var wake chan struct{}
	if q.wake != nil {
		wake = q.wake
		q.wake = nil
	}
	q.mu.Unlock()
	if wake != nil {
		close(wake)
	}
}

// Pull returns the head of the queue immediately if non-empty. If the
// queue is empty, it arms the wakeup hook and returns a channel that is
// closed on the next Push (or immediately, if one raced in already).
// Spurious wakeups are permitted: the caller must re-check by calling
// Pull again after the channel closes.
func (q *Queue) Pull() (url string, ready bool, wake <-chan struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) > 0 {
		url = q.items[0]
		q.items = q.items[1:]
		return url, true, nil
	}
	if q.wake == nil {
		q.wake = make(chan struct{})
	}
	return "", false, q.wake
}

// Len returns the current queue length.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns an independent ordered copy of the queue contents.
func (q *Queue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// MoveUp swaps the item at index with its predecessor. move_up(0) and
// any out-of-range index are no-ops.
func (q *Queue) MoveUp(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	if n < 2 || index <= 0 || index > n-1 {
		return
	}
	q.items[index], q.items[index-1] = q.items[index-1], q.items[index]
}

// MoveDown swaps the item at index with its successor. move_down(len-1)
// and any out-of-range index are no-ops.
func (q *Queue) MoveDown(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	if n < 2 || index < 0 || index > n-2 {
		return
	}
	q.items[index], q.items[index+1] = q.items[index+1], q.items[index]
}

// Remove deletes the item at index. Out-of-range index (including any
// index on an empty queue) is a no-op.
func (q *Queue) Remove(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	if n == 0 || index < 0 || index > n-1 {
		return
	}
	q.items = append(q.items[:index], q.items[index+1:]...)
}
