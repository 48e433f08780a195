package queue

import (
	"reflect"
	"testing"
	"time"
)

func TestPushPullOrder(t *testing.T) {
	q := New()
	q.Push("a")
	q.Push("b")
	q.Push("c")

	for _, want := range []string{"a", "b", "c"} {
		url, ready, _ := q.Pull()
		if !ready || url != want {
			t.Fatalf("Pull() = (%q, %v), want (%q, true)", url, ready, want)
		}
	}
}

func TestPullEmptyArmsWakeup(t *testing.T) {
	q := New()
	_, ready, wake := q.Pull()
	if ready {
		t.Fatal("Pull() on empty queue should not be ready")
	}
	select {
	case <-wake:
		t.Fatal("wake channel should not be closed yet")
	default:
	}

	done := make(chan string, 1)
	go func() {
		<-wake
		url, ready, _ := q.Pull()
		if ready {
			done <- url
		}
	}()

	q.Push("woken")

	select {
	case url := <-done:
		if url != "woken" {
			t.Fatalf("got %q, want %q", url, "woken")
		}
	case <-time.After(time.Second):
		t.Fatal("wakeup hook never fired")
	}
}

func TestMoveUpNoOps(t *testing.T) {
	q := New()
	q.Push("a")
	q.Push("b")
	q.MoveUp(0) // index 0 is a no-op
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("MoveUp(0) mutated queue: %v", got)
	}

	empty := New()
	empty.MoveUp(0)
	if empty.Len() != 0 {
		t.Fatal("MoveUp on empty queue should be a no-op")
	}

	q.MoveUp(5) // out of range
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("out-of-range MoveUp mutated queue: %v", got)
	}
}

func TestMoveDownNoOps(t *testing.T) {
	q := New()
	q.Push("a")
	q.Push("b")
	q.MoveDown(1) // len-1 is a no-op
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("MoveDown(len-1) mutated queue: %v", got)
	}
	q.MoveDown(9)
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("out-of-range MoveDown mutated queue: %v", got)
	}
}

func TestMoveUpDownSwap(t *testing.T) {
	q := New()
	for _, u := range []string{"a", "b", "c"} {
		q.Push(u)
	}
	q.MoveUp(2)
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Fatalf("MoveUp(2) = %v, want [a c b]", got)
	}
	q.MoveDown(0)
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("MoveDown(0) = %v, want [c a b]", got)
	}
}

func TestRemove(t *testing.T) {
	q := New()
	q.Remove(0) // empty queue, no-op
	if q.Len() != 0 {
		t.Fatal("Remove on empty queue should be a no-op")
	}

	for _, u := range []string{"a", "b", "c"} {
		q.Push(u)
	}
	q.Remove(5) // out of range
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("out-of-range Remove mutated queue: %v", got)
	}
	q.Remove(1)
	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("Remove(1) = %v, want [a c]", got)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	q := New()
	q.Push("a")
	snap := q.Snapshot()
	q.Push("b")
	if !reflect.DeepEqual(snap, []string{"a"}) {
		t.Fatalf("earlier snapshot mutated: %v", snap)
	}
}

// referenceModel re-implements the same operations naively for
// cross-checking against a scripted sequence.
type referenceModel struct{ items []string }

func (r *referenceModel) push(u string) { r.items = append(r.items, u) }
func (r *referenceModel) moveUp(i int) {
	n := len(r.items)
	if n < 2 || i <= 0 || i > n-1 {
		return
	}
	r.items[i], r.items[i-1] = r.items[i-1], r.items[i]
}
func (r *referenceModel) moveDown(i int) {
	n := len(r.items)
	if n < 2 || i < 0 || i > n-2 {
		return
	}
	r.items[i], r.items[i+1] = r.items[i+1], r.items[i]
}
func (r *referenceModel) remove(i int) {
	n := len(r.items)
	if n == 0 || i < 0 || i > n-1 {
		return
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
}

func TestQueueMatchesReferenceModel(t *testing.T) {
	type op struct {
		kind string
		idx  int
		url  string
	}
	script := []op{
		{kind: "push", url: "a"},
		{kind: "push", url: "b"},
		{kind: "push", url: "c"},
		{kind: "up", idx: 2},
		{kind: "down", idx: 0},
		{kind: "remove", idx: 1},
		{kind: "up", idx: 0},
		{kind: "remove", idx: 50},
		{kind: "push", url: "d"},
	}

	q := New()
	ref := &referenceModel{}
	for _, o := range script {
		switch o.kind {
		case "push":
			q.Push(o.url)
			ref.push(o.url)
		case "up":
			q.MoveUp(o.idx)
			ref.moveUp(o.idx)
		case "down":
			q.MoveDown(o.idx)
			ref.moveDown(o.idx)
		case "remove":
			q.Remove(o.idx)
			ref.remove(o.idx)
		}
	}

	if got := q.Snapshot(); !reflect.DeepEqual(got, ref.items) {
		t.Fatalf("queue = %v, reference model = %v", got, ref.items)
	}
}
