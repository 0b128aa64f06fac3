package events

// Handler receives a published event. Handlers run synchronously on the
// publishing goroutine; delivery order across subscribers is unspecified.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus is a synchronous publish/subscribe channel. It is not goroutine-safe:
// the engine is single-threaded and all publishing happens on the game loop.
type Bus struct {
	subs   map[Kind][]subscription
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers a handler for a kind and returns a cancel function.
// States subscribe on enter and cancel on exit so stale callbacks never fire
// after a state has been torn down. Cancelling twice is harmless.
func (b *Bus) Subscribe(k Kind, h Handler) (cancel func()) {
	b.nextID++
	id := b.nextID
	b.subs[k] = append(b.subs[k], subscription{id: id, handler: h})
	return func() {
		list := b.subs[k]
		for i := range list {
			if list[i].id == id {
				b.subs[k] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every current subscriber of its kind,
// synchronously. The subscriber list is snapshotted first, so handlers may
// subscribe or cancel during delivery without corrupting the iteration.
func (b *Bus) Publish(ev Event) {
	list := b.subs[ev.Kind]
	if len(list) == 0 {
		return
	}
	snapshot := make([]subscription, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		// A handler cancelled mid-publish must not fire.
		if b.active(ev.Kind, s.id) {
			s.handler(ev)
		}
	}
}

func (b *Bus) active(k Kind, id int) bool {
	for _, s := range b.subs[k] {
		if s.id == id {
			return true
		}
	}
	return false
}

// SubscriberCount reports how many handlers are registered for a kind.
// Used by tests asserting that states release their subscriptions on exit.
func (b *Bus) SubscriberCount(k Kind) int {
	return len(b.subs[k])
}
