package service

import (
	"context"
	"sync"

	"modamart/internal/catalog"
	"modamart/internal/collection"
	"modamart/internal/domain"

	"github.com/google/uuid"
)

// WishlistService exposes owner-scoped wishlist operations over the
// shared store and notifier.
type WishlistService interface {
	Items(ctx context.Context, owner string) []domain.WishlistItem
	Add(ctx context.Context, owner string, productID uuid.UUID) ([]domain.WishlistItem, error)
	Remove(ctx context.Context, owner string, productID uuid.UUID) ([]domain.WishlistItem, error)
	Clear(ctx context.Context, owner string) error
	Badge(ctx context.Context, owner string) int
}

type wishlistService struct {
	store    collection.Store
	notifier *collection.Notifier
	catalog  CatalogService

	mu        sync.Mutex
	wishlists map[string]*collection.Wishlist
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(store collection.Store, notifier *collection.Notifier, catalogSvc CatalogService) WishlistService {
	return &wishlistService{
		store:     store,
		notifier:  notifier,
		catalog:   catalogSvc,
		wishlists: make(map[string]*collection.Wishlist),
	}
}

func (s *wishlistService) wishlistFor(owner string) *collection.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl, ok := s.wishlists[owner]
	if !ok {
		wl = collection.NewWishlist(s.store, s.notifier, owner)
		s.wishlists[owner] = wl
	}
	return wl
}

// Items returns the wishlist contents for an owner.
func (s *wishlistService) Items(ctx context.Context, owner string) []domain.WishlistItem {
	return s.wishlistFor(owner).Load(ctx)
}

// Add snapshots the product's card data and saves it. Saving a product
// that is already on the list changes nothing.
func (s *wishlistService) Add(ctx context.Context, owner string, productID uuid.UUID) ([]domain.WishlistItem, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := domain.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0].URL
	}
	if len(product.Variants) > 0 {
		item.Price = catalog.CurrentPrice(&product.Variants[0])
	}

	return s.wishlistFor(owner).Add(ctx, item)
}

// Remove drops the saved product.
func (s *wishlistService) Remove(ctx context.Context, owner string, productID uuid.UUID) ([]domain.WishlistItem, error) {
	return s.wishlistFor(owner).Remove(ctx, productID)
}

// Clear empties the owner's wishlist.
func (s *wishlistService) Clear(ctx context.Context, owner string) error {
	return s.wishlistFor(owner).Clear(ctx)
}

// Badge returns the number of saved products.
func (s *wishlistService) Badge(ctx context.Context, owner string) int {
	return s.wishlistFor(owner).Count(ctx)
}
