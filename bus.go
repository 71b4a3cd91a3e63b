package grove

// Handler is a callback invoked synchronously by Bus.Publish.
type Handler func(args ...any)

// Subscription identifies a registered handler so it can be removed later.
// The zero value is never a valid subscription.
type Subscription struct {
	event string
	id    uint64
}

type busEntry struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous publish/subscribe channel used for decoupled
// notification (e.g. "frame updated"). Handlers for an event run in
// registration order. The bus provides no fault isolation: a panic in a
// handler propagates to the publisher's caller.
//
// Not safe for concurrent use; grove assumes single-threaded dispatch.
type Bus struct {
	handlers map[string][]busEntry
	nextID   uint64
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]busEntry)}
}

// Subscribe registers handler for the named event and returns a handle for
// later removal. Multiple handlers per event are allowed; publish invokes
// them in registration order.
func (b *Bus) Subscribe(event string, handler Handler) Subscription {
	b.nextID++
	b.handlers[event] = append(b.handlers[event], busEntry{id: b.nextID, handler: handler})
	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes the handler identified by sub.
// No-op if the subscription is unknown or already removed.
func (b *Bus) Unsubscribe(sub Subscription) {
	entries := b.handlers[sub.event]
	for i, e := range entries {
		if e.id == sub.id {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = busEntry{}
			b.handlers[sub.event] = entries[:len(entries)-1]
			return
		}
	}
}

// Publish synchronously invokes all handlers currently registered for the
// named event, in registration order, passing args. No-op if the event has
// no handlers. Handlers subscribed or unsubscribed during a publish take
// effect from the next publish.
func (b *Bus) Publish(event string, args ...any) {
	entries := b.handlers[event]
	if len(entries) == 0 {
		return
	}
	// Snapshot so handler-driven (un)subscription or a nested publish
	// can't shift the walk. Must be a fresh slice per publish: handlers
	// may publish again before this walk finishes.
	snapshot := append([]busEntry(nil), entries...)
	for _, e := range snapshot {
		e.handler(args...)
	}
}

// NumHandlers returns the number of handlers registered for the named event.
func (b *Bus) NumHandlers(event string) int {
	return len(b.handlers[event])
}
