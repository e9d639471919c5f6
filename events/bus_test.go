package events

import "testing"

func TestBusDispatch(t *testing.T) {
	b := NewBus()
	var resizes, leaves int
	var lastX, lastY float64

	b.OnResize(func() { resizes++ })
	b.OnPointerMove(func(x, y float64) { lastX, lastY = x, y })
	b.OnPointerLeave(func() { leaves++ })

	b.EmitResize()
	b.EmitPointerMove(12.5, -3)
	b.EmitPointerLeave()
	b.EmitPointerLeave()

	if resizes != 1 {
		t.Errorf("resizes = %d, want 1", resizes)
	}
	if lastX != 12.5 || lastY != -3 {
		t.Errorf("pointer = (%v, %v), want (12.5, -3)", lastX, lastY)
	}
	if leaves != 2 {
		t.Errorf("leaves = %d, want 2", leaves)
	}
}

func TestListenerRemove(t *testing.T) {
	b := NewBus()
	calls := 0
	l := b.OnResize(func() { calls++ })
	keep := b.OnResize(func() {})

	l.Remove()
	l.Remove()
	b.EmitResize()

	if calls != 0 {
		t.Errorf("removed listener called %d times", calls)
	}
	if b.Count(KindResize) != 1 {
		t.Errorf("resize listeners = %d, want 1", b.Count(KindResize))
	}

	keep.Remove()
	if b.Len() != 0 {
		t.Errorf("len = %d, want 0", b.Len())
	}

	var nilListener *Listener
	nilListener.Remove()
}

func TestListenerRemovesItselfDuringDispatch(t *testing.T) {
	b := NewBus()
	var order []string
	var first *Listener
	first = b.OnPointerLeave(func() {
		order = append(order, "first")
		first.Remove()
	})
	b.OnPointerLeave(func() { order = append(order, "second") })

	b.EmitPointerLeave()
	b.EmitPointerLeave()

	want := []string{"first", "second", "second"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindResize:       "resize",
		KindPointerMove:  "pointer_move",
		KindPointerLeave: "pointer_leave",
		Kind(99):         "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
