package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"modamart/internal/domain"

	"github.com/google/uuid"
)

const wishlistKeyPrefix = "wishlist:"

// Wishlist is the durable saved-products collection for one owner.
// Identity is the product ID alone: adding an already-present product
// is a no-op and the first-added snapshot wins. Mutations persist
// before the wishlistUpdated signal fires.
type Wishlist struct {
	mu       sync.Mutex
	store    Store
	notifier *Notifier
	key      string
	items    []domain.WishlistItem
	loaded   bool
}

// NewWishlist creates the wishlist collection for an owner.
func NewWishlist(store Store, notifier *Notifier, owner string) *Wishlist {
	return &Wishlist{
		store:    store,
		notifier: notifier,
		key:      wishlistKeyPrefix + owner,
	}
}

// Load returns the wishlist contents. Absent or undecodable stored
// values yield an empty wishlist.
func (w *Wishlist) Load(ctx context.Context) []domain.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureLoaded(ctx)
	return w.snapshot()
}

// Add appends the item unless its product is already saved, in which
// case nothing changes (not even price or image refreshes).
func (w *Wishlist) Add(ctx context.Context, item domain.WishlistItem) ([]domain.WishlistItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureLoaded(ctx)

	for _, it := range w.items {
		if it.ProductID == item.ProductID {
			return w.snapshot(), nil
		}
	}
	w.items = append(w.items, item)

	return w.snapshot(), w.persistAndNotify(ctx)
}

// Remove drops the saved product, if present.
func (w *Wishlist) Remove(ctx context.Context, productID uuid.UUID) ([]domain.WishlistItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureLoaded(ctx)

	kept := w.items[:0]
	for _, it := range w.items {
		if it.ProductID == productID {
			continue
		}
		kept = append(kept, it)
	}
	w.items = kept

	return w.snapshot(), w.persistAndNotify(ctx)
}

// Clear empties the wishlist.
func (w *Wishlist) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = nil
	w.loaded = true
	return w.persistAndNotify(ctx)
}

// Count returns the number of saved products.
func (w *Wishlist) Count(ctx context.Context) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureLoaded(ctx)
	return len(w.items)
}

func (w *Wishlist) ensureLoaded(ctx context.Context) {
	if w.loaded {
		return
	}
	w.loaded = true

	data, ok, err := w.store.Get(ctx, w.key)
	if err != nil || !ok {
		return
	}
	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return
	}
	w.items = items
}

func (w *Wishlist) persistAndNotify(ctx context.Context) error {
	items := w.items
	if items == nil {
		items = []domain.WishlistItem{}
	}

	data, err := json.Marshal(items)
	if err == nil {
		err = w.store.Set(ctx, w.key, data)
	}

	w.notifier.Publish(SignalWishlistUpdated)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

func (w *Wishlist) snapshot() []domain.WishlistItem {
	out := make([]domain.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}
