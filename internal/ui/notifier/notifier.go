// Package notifier tells long-lived SSE streams that categories changed.
package notifier

import "sync"

// Reason says what kind of change a broadcast announces.
type Reason string

const (
	CategoryCreated      Reason = "created"
	CategoryUpdated      Reason = "updated"
	CategoryDeleted      Reason = "deleted"
	TranslationsReloaded Reason = "translations"
	// Reload asks dev-mode pages to reload; it carries no category.
	Reload Reason = "reload"
)

// Change is one broadcast. CategoryID is empty for changes that are not
// about a single category.
type Change struct {
	Reason     Reason
	CategoryID string
}

// Removes reports whether c deleted the category with the given id.
func (c Change) Removes(id string) bool {
	return c.Reason == CategoryDeleted && id != "" && c.CategoryID == id
}

// Notifier fans changes out to subscribed SSE streams. A stream that has not
// consumed its pending change misses newer ones until it does; streams
// re-query on every change, so only the newest state matters.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Change]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Change]struct{}),
	}
}

// Subscribe returns a channel that receives changes.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan Change {
	ch := make(chan Change, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Change) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends c to all listeners without blocking.
func (n *Notifier) Broadcast(c Change) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- c:
		default:
			// Listener still has a change pending
		}
	}
}

// Listeners returns the number of subscribed streams.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
