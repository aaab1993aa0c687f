package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()

	a, b := 0, 0
	cancelA := n.Subscribe(SignalCartUpdated, func() { a++ })
	defer cancelA()
	cancelB := n.Subscribe(SignalCartUpdated, func() { b++ })
	defer cancelB()

	n.Publish(SignalCartUpdated)
	n.Publish(SignalCartUpdated)

	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestNotifierSignalsAreIndependent(t *testing.T) {
	n := NewNotifier()

	cart, wishlist := 0, 0
	cancelC := n.Subscribe(SignalCartUpdated, func() { cart++ })
	defer cancelC()
	cancelW := n.Subscribe(SignalWishlistUpdated, func() { wishlist++ })
	defer cancelW()

	n.Publish(SignalCartUpdated)

	assert.Equal(t, 1, cart)
	assert.Equal(t, 0, wishlist)
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	n := NewNotifier()

	calls := 0
	cancel := n.Subscribe(SignalWishlistUpdated, func() { calls++ })

	n.Publish(SignalWishlistUpdated)
	cancel()
	n.Publish(SignalWishlistUpdated)

	assert.Equal(t, 1, calls)
}

func TestNotifierPublishWithoutSubscribers(t *testing.T) {
	n := NewNotifier()
	// Must not panic.
	n.Publish(SignalCartUpdated)
	n.Publish("unheard")
}
