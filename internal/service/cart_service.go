package service

import (
	"context"
	"errors"
	"sync"

	"modamart/internal/catalog"
	"modamart/internal/collection"
	"modamart/internal/domain"

	"github.com/google/uuid"
)

var ErrVariantUnavailable = errors.New("variant is unavailable")

// AddCartItemInput identifies what the shopper wants to add. The
// snapshot fields (name, price, color, size, image) are resolved
// server-side from the catalog at add time.
type AddCartItemInput struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// CartService exposes owner-scoped cart operations. Each owner (a user
// ID or an anonymous session ID) gets one cart, kept in memory for the
// life of the process and written through to the shared store.
type CartService interface {
	Items(ctx context.Context, owner string) []domain.CartItem
	Add(ctx context.Context, owner string, input AddCartItemInput) ([]domain.CartItem, error)
	Remove(ctx context.Context, owner string, productID, variantID uuid.UUID) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, owner string, variantID uuid.UUID, quantity int) ([]domain.CartItem, error)
	Clear(ctx context.Context, owner string) error
	Badge(ctx context.Context, owner string) int
}

type cartService struct {
	store    collection.Store
	notifier *collection.Notifier
	catalog  CatalogService

	mu    sync.Mutex
	carts map[string]*collection.Cart
}

// NewCartService creates a new instance of CartService
func NewCartService(store collection.Store, notifier *collection.Notifier, catalogSvc CatalogService) CartService {
	return &cartService{
		store:    store,
		notifier: notifier,
		catalog:  catalogSvc,
		carts:    make(map[string]*collection.Cart),
	}
}

func (s *cartService) cartFor(owner string) *collection.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[owner]
	if !ok {
		cart = collection.NewCart(s.store, s.notifier, owner)
		s.carts[owner] = cart
	}
	return cart
}

// Items returns the cart contents for an owner.
func (s *cartService) Items(ctx context.Context, owner string) []domain.CartItem {
	return s.cartFor(owner).Load(ctx)
}

// Add resolves the variant against the catalog, snapshots its display
// data, and merges the item into the owner's cart.
func (s *cartService) Add(ctx context.Context, owner string, input AddCartItemInput) ([]domain.CartItem, error) {
	item, err := s.buildSnapshot(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.cartFor(owner).Add(ctx, item)
}

// Remove drops the (product, variant) entry from the owner's cart.
func (s *cartService) Remove(ctx context.Context, owner string, productID, variantID uuid.UUID) ([]domain.CartItem, error) {
	return s.cartFor(owner).Remove(ctx, productID, variantID)
}

// UpdateQuantity sets the quantity for a variant entry; zero removes it.
func (s *cartService) UpdateQuantity(ctx context.Context, owner string, variantID uuid.UUID, quantity int) ([]domain.CartItem, error) {
	return s.cartFor(owner).UpdateQuantity(ctx, variantID, quantity)
}

// Clear empties the owner's cart.
func (s *cartService) Clear(ctx context.Context, owner string) error {
	return s.cartFor(owner).Clear(ctx)
}

// Badge returns the total quantity across the owner's cart entries.
func (s *cartService) Badge(ctx context.Context, owner string) int {
	return s.cartFor(owner).TotalQuantity(ctx)
}

// buildSnapshot freezes the variant's display data into a cart item.
// Prices in the cart are the price at add time, not a live lookup.
func (s *cartService) buildSnapshot(ctx context.Context, input AddCartItemInput) (domain.CartItem, error) {
	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return domain.CartItem{}, err
	}

	var variant *domain.Variant
	for i := range product.Variants {
		if product.Variants[i].ID == input.VariantID {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil || !variant.IsActive || variant.Stock <= 0 {
		return domain.CartItem{}, ErrVariantUnavailable
	}

	index := catalog.NewVariantIndex(product.Variants, product.Images)
	imageURL := ""
	if images := index.ImagesForColor(variant.ColorID); len(images) > 0 {
		imageURL = images[0].URL
	}

	item := domain.CartItem{
		ProductID:     product.ID,
		VariantID:     variant.ID,
		Quantity:      input.Quantity,
		Price:         catalog.CurrentPrice(variant),
		OriginalPrice: catalog.OriginalPrice(variant),
		Name:          product.Name,
		Color:         variant.Color.Name,
		Size:          variant.Size.Name,
		Image:         imageURL,
		Brand:         product.BrandName,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	return item, nil
}
