package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"modamart/internal/domain"

	"github.com/google/uuid"
)

// ErrPersistFailed marks a mutation that changed the in-memory
// collection but could not be written through to the store. The
// in-memory state stays authoritative for the rest of the session;
// callers may surface a non-fatal warning and keep going.
var ErrPersistFailed = errors.New("collection persist failed")

const cartKeyPrefix = "cart:"

// Cart is a durable, deduplicated, ordered cart collection for one
// owner. Entries are keyed by (product, variant): adding an existing
// pair merges by summing quantity, insertion order is preserved, and
// every successful mutation is written through to the store before the
// cartUpdated signal fires.
//
// A missing or corrupt stored value loads as an empty cart; the cart
// never fails a read.
type Cart struct {
	mu       sync.Mutex
	store    Store
	notifier *Notifier
	key      string
	items    []domain.CartItem
	loaded   bool
}

// NewCart creates the cart collection for an owner (a user ID or an
// anonymous session ID).
func NewCart(store Store, notifier *Notifier, owner string) *Cart {
	return &Cart{
		store:    store,
		notifier: notifier,
		key:      cartKeyPrefix + owner,
	}
}

// Load returns the cart contents, reading from the store on first use.
// Absent or undecodable values yield an empty cart.
func (c *Cart) Load(ctx context.Context) []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	return c.snapshot()
}

// Add merges the item into the cart and returns the updated contents.
// An existing (product, variant) entry absorbs the quantity; otherwise
// the item is appended. Quantities below one are normalized to one.
func (c *Cart) Add(ctx context.Context, item domain.CartItem) ([]domain.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	merged := false
	for i := range c.items {
		if c.items[i].SameIdentity(item) {
			c.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, item)
	}

	return c.snapshot(), c.persistAndNotify(ctx)
}

// Remove drops the entry matching the identity pair and returns the
// updated contents. Removing an absent entry is a no-op.
func (c *Cart) Remove(ctx context.Context, productID, variantID uuid.UUID) ([]domain.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID == productID && it.VariantID == variantID {
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept

	return c.snapshot(), c.persistAndNotify(ctx)
}

// UpdateQuantity sets the quantity of the entry with the given variant.
// A quantity of zero or less removes the entry instead.
func (c *Cart) UpdateQuantity(ctx context.Context, variantID uuid.UUID, quantity int) ([]domain.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	if quantity <= 0 {
		kept := c.items[:0]
		for _, it := range c.items {
			if it.VariantID == variantID {
				continue
			}
			kept = append(kept, it)
		}
		c.items = kept
	} else {
		for i := range c.items {
			if c.items[i].VariantID == variantID {
				c.items[i].Quantity = quantity
				break
			}
		}
	}

	return c.snapshot(), c.persistAndNotify(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.loaded = true
	return c.persistAndNotify(ctx)
}

// TotalQuantity sums the quantities of all entries, the number a header
// badge shows.
func (c *Cart) TotalQuantity(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true

	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil || !ok {
		return
	}
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// Corrupt entry: start over with an empty cart.
		return
	}
	c.items = items
}

// persistAndNotify writes the collection through to the store and then
// fires cartUpdated. The signal fires even when the write failed, so
// listeners track the in-memory state that remains authoritative.
func (c *Cart) persistAndNotify(ctx context.Context) error {
	data, err := json.Marshal(c.itemsOrEmpty())
	if err == nil {
		err = c.store.Set(ctx, c.key, data)
	}

	c.notifier.Publish(SignalCartUpdated)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

func (c *Cart) itemsOrEmpty() []domain.CartItem {
	if c.items == nil {
		return []domain.CartItem{}
	}
	return c.items
}

func (c *Cart) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}
