package collection

import "sync"

// Change signals. Subscribers receive no payload: the contract is that
// a listener re-reads the collection it cares about when its signal
// fires, which gives read-after-write consistency because signals are
// only published after the persisted write completes.
const (
	SignalCartUpdated     = "cartUpdated"
	SignalWishlistUpdated = "wishlistUpdated"
)

// Notifier is a process-wide, synchronous broadcast channel for named
// payload-less signals. Unrelated components (a header badge, for
// example) subscribe so they can recompute derived state after every
// collection mutation without polling.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]map[int]func()
	next int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for a signal and returns a cancel function.
// fn runs synchronously on the publishing goroutine.
func (n *Notifier) Subscribe(signal string, fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[signal] == nil {
		n.subs[signal] = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[signal][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[signal], id)
	}
}

// Publish delivers the signal to every subscriber, synchronously, in
// unspecified order. Subscribers run outside the notifier lock so they
// may subscribe or publish themselves.
func (n *Notifier) Publish(signal string) {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs[signal]))
	for _, fn := range n.subs[signal] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
