package frame

import "testing"

// recordingSource keeps every callback so tests can invoke stale ones.
type recordingSource struct {
	callbacks []func()
	cancelled []Handle
}

func (r *recordingSource) RequestFrame(fn func()) Handle {
	r.callbacks = append(r.callbacks, fn)
	return Handle(len(r.callbacks))
}

func (r *recordingSource) CancelFrame(h Handle) {
	r.cancelled = append(r.cancelled, h)
}

func TestQueueRunFrame(t *testing.T) {
	q := NewQueue()
	var order []int
	q.RequestFrame(func() { order = append(order, 1) })
	q.RequestFrame(func() { order = append(order, 2) })

	if q.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", q.Pending())
	}
	if n := q.RunFrame(); n != 2 {
		t.Errorf("RunFrame ran %d callbacks, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if q.Pending() != 0 {
		t.Errorf("pending after run = %d, want 0", q.Pending())
	}
}

func TestQueueRequestDuringFrameWaits(t *testing.T) {
	q := NewQueue()
	runs := 0
	var fn func()
	fn = func() {
		runs++
		q.RequestFrame(fn)
	}
	q.RequestFrame(fn)

	q.RunFrame()
	q.RunFrame()
	q.RunFrame()

	if runs != 3 {
		t.Errorf("runs = %d, want one per frame (3)", runs)
	}
	if q.Frames() != 3 {
		t.Errorf("frames = %d, want 3", q.Frames())
	}
}

func TestQueueCancelFrame(t *testing.T) {
	q := NewQueue()
	ran := false
	h := q.RequestFrame(func() { ran = true })
	q.CancelFrame(h)
	q.CancelFrame(h)      // already cancelled
	q.CancelFrame(h + 10) // never issued

	if n := q.RunFrame(); n != 0 || ran {
		t.Errorf("cancelled callback ran (n=%d, ran=%v)", n, ran)
	}
}

func TestSchedulerTicksOncePerFrame(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q)
	ticks := 0
	s.Start(func() { ticks++ })

	if ticks != 0 {
		t.Fatal("Start must not tick synchronously")
	}
	for i := 0; i < 5; i++ {
		q.RunFrame()
	}
	if ticks != 5 || s.Ticks() != 5 {
		t.Errorf("ticks = %d (scheduler %d), want 5", ticks, s.Ticks())
	}
	if q.Pending() != 1 {
		t.Errorf("pending = %d, want exactly one outstanding request", q.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q)
	ticks := 0
	s.Start(func() { ticks++ })
	q.RunFrame()

	s.Cancel()
	s.Cancel() // idempotent

	if s.Running() {
		t.Error("scheduler still running after Cancel")
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d, want 0 after Cancel", q.Pending())
	}
	for i := 0; i < 3; i++ {
		q.RunFrame()
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1 (none after Cancel)", ticks)
	}
}

func TestSchedulerStaleCallbackIsNoop(t *testing.T) {
	src := &recordingSource{}
	s := NewScheduler(src)
	ticks := 0
	s.Start(func() { ticks++ })

	src.callbacks[0]()
	if ticks != 1 {
		t.Fatalf("ticks = %d, want 1", ticks)
	}

	s.Cancel()
	if len(src.cancelled) != 1 || src.cancelled[0] != Handle(2) {
		t.Errorf("cancelled = %v, want [2]", src.cancelled)
	}

	// The host fires every callback it ever received, including stale ones
	for _, cb := range src.callbacks {
		cb()
	}
	if ticks != 1 {
		t.Errorf("ticks = %d after cancel, want 1", ticks)
	}
}

func TestSchedulerCancelFromTick(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q)
	ticks := 0
	s.Start(func() {
		ticks++
		if ticks == 2 {
			s.Cancel()
		}
	})

	for i := 0; i < 5; i++ {
		q.RunFrame()
	}
	if ticks != 2 {
		t.Errorf("ticks = %d, want 2", ticks)
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d, want 0", q.Pending())
	}
}

func TestSchedulerRestart(t *testing.T) {
	src := &recordingSource{}
	s := NewScheduler(src)
	first, second := 0, 0
	s.Start(func() { first++ })
	s.Cancel()
	s.Start(func() { second++ })

	// Callback from the first run must not fire the second tick function
	src.callbacks[0]()
	src.callbacks[1]()

	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d, want 0 and 1", first, second)
	}
}
