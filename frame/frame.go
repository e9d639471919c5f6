// Package frame drives the tick loop from a host "next frame" primitive.
package frame

// Handle identifies a pending frame request.
type Handle uint64

// Source is the host's frame pacing primitive. Each request invokes its
// callback at most once, on a later frame.
type Source interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

type request struct {
	handle Handle
	fn     func()
}

// Queue is a Source whose frames are run explicitly by the owner loop.
// Host loops call RunFrame once per display frame; tests call it to run ticks
// synchronously on demand.
type Queue struct {
	next    Handle
	pending []request
	frames  uint64
}

// NewQueue creates an empty frame queue.
func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame schedules fn for the next RunFrame.
func (q *Queue) RequestFrame(fn func()) Handle {
	q.next++
	q.pending = append(q.pending, request{handle: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a pending request. Unknown or already-run handles are ignored.
func (q *Queue) CancelFrame(h Handle) {
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// RunFrame invokes every callback pending at call time and returns how many ran.
// Requests made by those callbacks wait for the following frame.
func (q *Queue) RunFrame() int {
	q.frames++
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

// Pending returns the number of requests waiting for the next frame.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Frames returns how many times RunFrame has been called.
func (q *Queue) Frames() uint64 {
	return q.frames
}
