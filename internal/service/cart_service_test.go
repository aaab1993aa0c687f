package service

import (
	"context"
	"testing"

	"modamart/internal/collection"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollectionStore(t *testing.T) collection.Store {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return collection.NewRedisStore(client, 0)
}

func TestCartServiceAddSnapshotsVariant(t *testing.T) {
	productRepo, brandRepo, product := seedCatalog(t)
	catalogSvc := NewCatalogService(productRepo, brandRepo, 0)
	store := testCollectionStore(t)
	notifier := collection.NewNotifier()
	svc := NewCartService(store, notifier, catalogSvc)
	ctx := context.Background()

	full, err := catalogSvc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	blackM := full.Variants[1]
	whiteS := full.Variants[2]

	items, err := svc.Add(ctx, "shopper", AddCartItemInput{
		ProductID: product.ID,
		VariantID: blackM.ID,
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "Midi Dress", got.Name)
	assert.Equal(t, "Black", got.Color)
	assert.Equal(t, "M", got.Size)
	assert.Equal(t, "Maison Nord", got.Brand)
	assert.Equal(t, 2, got.Quantity)
	assert.InDelta(t, 85.00, got.Price, 0.001)
	assert.Zero(t, got.OriginalPrice)
	assert.Contains(t, got.Image, "dress-a")

	// The discounted white variant snapshots both prices and its own
	// image block.
	items, err = svc.Add(ctx, "shopper", AddCartItemInput{
		ProductID: product.ID,
		VariantID: whiteS.ID,
		Quantity:  1,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.InDelta(t, 64.00, items[1].Price, 0.001)
	assert.InDelta(t, 80.00, items[1].OriginalPrice, 0.001)
	assert.Contains(t, items[1].Image, "dress-d")

	assert.Equal(t, 3, svc.Badge(ctx, "shopper"))
}

func TestCartServiceRejectsUnavailableVariant(t *testing.T) {
	productRepo, brandRepo, product := seedCatalog(t)
	catalogSvc := NewCatalogService(productRepo, brandRepo, 0)
	svc := NewCartService(testCollectionStore(t), collection.NewNotifier(), catalogSvc)
	ctx := context.Background()

	full, err := catalogSvc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	blackS := full.Variants[0] // out of stock

	_, err = svc.Add(ctx, "shopper", AddCartItemInput{
		ProductID: product.ID,
		VariantID: blackS.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrVariantUnavailable)
	assert.Empty(t, svc.Items(ctx, "shopper"))
}

func TestCartServiceOwnersAreIsolated(t *testing.T) {
	productRepo, brandRepo, product := seedCatalog(t)
	catalogSvc := NewCatalogService(productRepo, brandRepo, 0)
	svc := NewCartService(testCollectionStore(t), collection.NewNotifier(), catalogSvc)
	ctx := context.Background()

	full, err := catalogSvc.GetProduct(ctx, product.ID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "alice", AddCartItemInput{
		ProductID: product.ID,
		VariantID: full.Variants[1].ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	assert.Len(t, svc.Items(ctx, "alice"), 1)
	assert.Empty(t, svc.Items(ctx, "bob"))
	assert.Equal(t, 0, svc.Badge(ctx, "bob"))
}

func TestWishlistServiceAddIsIdempotent(t *testing.T) {
	productRepo, brandRepo, product := seedCatalog(t)
	catalogSvc := NewCatalogService(productRepo, brandRepo, 0)
	notifier := collection.NewNotifier()
	svc := NewWishlistService(testCollectionStore(t), notifier, catalogSvc)
	ctx := context.Background()

	fired := 0
	cancel := notifier.Subscribe(collection.SignalWishlistUpdated, func() { fired++ })
	defer cancel()

	items, err := svc.Add(ctx, "shopper", product.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Midi Dress", items[0].Name)
	assert.InDelta(t, 85.00, items[0].Price, 0.001)
	assert.Contains(t, items[0].Image, "dress-a")

	items, err = svc.Add(ctx, "shopper", product.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, svc.Badge(ctx, "shopper"))
}
