package session

import "sync"

// Bus is the session-change broadcast channel. Notifications carry no
// payload: listeners re-read the store instead of trusting event contents,
// which makes duplicate delivery harmless. Delivery is synchronous in the
// caller's goroutine.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewBus returns an empty broadcast bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (b *Bus) Subscribe(fn func()) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[b.nextID] = fn
	return b.nextID
}

// Unsubscribe removes a listener. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Notify invokes every current listener. Handlers run outside the lock so
// they may subscribe or unsubscribe without deadlocking.
func (b *Bus) Notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
