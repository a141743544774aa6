// Package store holds the storefront's client-side state containers: cart,
// guest cart, wishlist, compare and the display currency/language choices.
// Stores are explicit handles passed to whoever needs them, never ambient
// globals. Every mutation surfaces a user-visible Event so the notification
// layer can toast without the stores knowing how.
package store

import "sync"

// Level classifies how an event should be surfaced.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Event is a user-visible outcome of a store mutation.
type Event struct {
	Kind    string // which store emitted it, e.g. "cart", "compare"
	Level   Level
	Message string
}

// notifier fans events out to subscribers. Embedded by each store.
type notifier struct {
	mu   sync.Mutex
	subs []func(Event)
}

// Subscribe registers fn to receive every subsequent event. Subscribers are
// invoked synchronously on the mutating goroutine, so they must not call
// back into the store.
func (n *notifier) Subscribe(fn func(Event)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *notifier) publish(e Event) {
	n.mu.Lock()
	subs := make([]func(Event), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
