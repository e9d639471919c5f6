// Package events delivers host input notifications to registered listeners.
//
// Dispatch is synchronous on the caller's goroutine. Hosts that receive input
// on other goroutines must forward it to the loop goroutine before emitting.
package events

// Kind identifies an event stream.
type Kind uint8

const (
	KindResize Kind = iota
	KindPointerMove
	KindPointerLeave
)

func (k Kind) String() string {
	switch k {
	case KindResize:
		return "resize"
	case KindPointerMove:
		return "pointer_move"
	case KindPointerLeave:
		return "pointer_leave"
	}
	return "unknown"
}

type entry struct {
	id     uint64
	kind   Kind
	notify func()
	move   func(x, y float64)
}

// Bus holds listeners for resize, pointer-move and pointer-leave notifications.
// Listeners are invoked in registration order.
type Bus struct {
	nextID  uint64
	entries []entry
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Listener is a registration handle returned by the On* methods.
type Listener struct {
	bus *Bus
	id  uint64
}

// Remove detaches the listener. Removing twice is harmless.
func (l *Listener) Remove() {
	if l == nil || l.bus == nil {
		return
	}
	l.bus.remove(l.id)
	l.bus = nil
}

// OnResize registers fn for viewport size changes. The event carries no payload;
// listeners read the current size from the host.
func (b *Bus) OnResize(fn func()) *Listener {
	return b.add(entry{kind: KindResize, notify: fn})
}

// OnPointerMove registers fn for pointer motion in absolute device coordinates.
func (b *Bus) OnPointerMove(fn func(x, y float64)) *Listener {
	return b.add(entry{kind: KindPointerMove, move: fn})
}

// OnPointerLeave registers fn for the pointer leaving the surface.
func (b *Bus) OnPointerLeave(fn func()) *Listener {
	return b.add(entry{kind: KindPointerLeave, notify: fn})
}

func (b *Bus) add(e entry) *Listener {
	b.nextID++
	e.id = b.nextID
	b.entries = append(b.entries, e)
	return &Listener{bus: b, id: e.id}
}

func (b *Bus) remove(id uint64) {
	for i, e := range b.entries {
		if e.id == id {
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			return
		}
	}
}

// EmitResize notifies resize listeners.
func (b *Bus) EmitResize() {
	for _, e := range b.snapshot(KindResize) {
		e.notify()
	}
}

// EmitPointerMove notifies pointer-move listeners.
func (b *Bus) EmitPointerMove(x, y float64) {
	for _, e := range b.snapshot(KindPointerMove) {
		e.move(x, y)
	}
}

// EmitPointerLeave notifies pointer-leave listeners.
func (b *Bus) EmitPointerLeave() {
	for _, e := range b.snapshot(KindPointerLeave) {
		e.notify()
	}
}

// snapshot copies matching entries so listeners may remove themselves mid-dispatch.
func (b *Bus) snapshot(kind Kind) []entry {
	var out []entry
	for _, e := range b.entries {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of listeners registered for kind.
func (b *Bus) Count(kind Kind) int {
	n := 0
	for _, e := range b.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of registered listeners.
func (b *Bus) Len() int {
	return len(b.entries)
}
