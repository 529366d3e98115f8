package session

import "testing"

func TestBusNotify(t *testing.T) {
	b := NewBus()

	var a, c int
	b.Subscribe(func() { a++ })
	idC := b.Subscribe(func() { c++ })

	b.Notify()
	if a != 1 || c != 1 {
		t.Errorf("after one Notify: a=%d c=%d, want 1 1", a, c)
	}

	// Duplicate delivery must be harmless; listeners just re-read state.
	b.Notify()
	if a != 2 || c != 2 {
		t.Errorf("after two Notifies: a=%d c=%d, want 2 2", a, c)
	}

	b.Unsubscribe(idC)
	b.Notify()
	if a != 3 {
		t.Errorf("a = %d, want 3", a)
	}
	if c != 2 {
		t.Errorf("c = %d after Unsubscribe, want 2", c)
	}
}

func TestBusNotifyEmpty(t *testing.T) {
	b := NewBus()
	b.Notify() // no listeners, no panic
}

func TestBusUnsubscribeUnknown(t *testing.T) {
	b := NewBus()
	b.Unsubscribe(42) // ignored
}

func TestBusSubscribeDuringNotify(t *testing.T) {
	b := NewBus()

	var late int
	b.Subscribe(func() {
		// Re-entrant subscribe must not deadlock.
		b.Subscribe(func() { late++ })
	})

	b.Notify()
	if late != 0 {
		t.Errorf("late = %d, want 0 (new listener not called in same turn)", late)
	}
	b.Notify()
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}
