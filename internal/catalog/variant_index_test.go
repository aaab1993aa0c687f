package catalog

import (
	"testing"

	"modamart/internal/domain"

	"github.com/google/uuid"
)

func newTestColor(name string) domain.Color {
	return domain.Color{ID: uuid.New(), Name: name}
}

func newTestSize(name string) domain.Size {
	return domain.Size{ID: uuid.New(), Name: name}
}

func newTestVariant(productID uuid.UUID, color domain.Color, size domain.Size, stock, threshold int, price, discount string) domain.Variant {
	return domain.Variant{
		ID:                uuid.New(),
		ProductID:         productID,
		ColorID:           color.ID,
		SizeID:            size.ID,
		Stock:             stock,
		LowStockThreshold: threshold,
		Price:             price,
		DiscountPrice:     discount,
		SKU:               "SKU-" + color.Name + "-" + size.Name,
		IsActive:          true,
		Color:             color,
		Size:              size,
	}
}

func newTestImages(productID uuid.UUID, n int) []domain.Image {
	images := make([]domain.Image, n)
	for i := range images {
		images[i] = domain.Image{
			ID:        uuid.New(),
			ProductID: productID,
			URL:       "https://cdn.example.com/p/" + uuid.NewString() + ".jpg",
			Position:  i,
		}
	}
	return images
}

func TestAvailableColorsPreservesFirstSeenOrder(t *testing.T) {
	productID := uuid.New()
	black := newTestColor("Black")
	white := newTestColor("White")
	sizeS := newTestSize("S")
	sizeM := newTestSize("M")

	variants := []domain.Variant{
		newTestVariant(productID, black, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, black, sizeM, 10, 3, "49.99", ""),
		newTestVariant(productID, white, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, black, sizeS, 10, 3, "49.99", ""), // duplicate color
	}

	idx := NewVariantIndex(variants, nil)
	colors := idx.AvailableColors()

	if len(colors) != 2 {
		t.Fatalf("expected 2 distinct colors, got %d", len(colors))
	}
	if colors[0].ID != black.ID || colors[1].ID != white.ID {
		t.Errorf("colors out of first-seen order: got %s, %s", colors[0].Name, colors[1].Name)
	}
}

func TestAvailableSizesFollowsVariantOrder(t *testing.T) {
	productID := uuid.New()
	black := newTestColor("Black")
	white := newTestColor("White")
	sizeS := newTestSize("S")
	sizeM := newTestSize("M")
	sizeL := newTestSize("L")

	variants := []domain.Variant{
		newTestVariant(productID, black, sizeM, 10, 3, "49.99", ""),
		newTestVariant(productID, white, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, black, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, black, sizeL, 10, 3, "49.99", ""),
	}

	idx := NewVariantIndex(variants, nil)
	sizes := idx.AvailableSizes(black.ID)

	if len(sizes) != 3 {
		t.Fatalf("expected 3 sizes for black, got %d", len(sizes))
	}
	want := []string{"M", "S", "L"}
	for i, s := range sizes {
		if s.Name != want[i] {
			t.Errorf("size[%d]: expected %s, got %s", i, want[i], s.Name)
		}
	}

	if got := idx.AvailableSizes(uuid.New()); len(got) != 0 {
		t.Errorf("expected no sizes for unknown color, got %d", len(got))
	}
}

func TestImagesForColorPositionalBlocks(t *testing.T) {
	productID := uuid.New()
	black := newTestColor("Black")
	white := newTestColor("White")
	red := newTestColor("Red")
	sizeS := newTestSize("S")

	variants := []domain.Variant{
		newTestVariant(productID, black, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, white, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, red, sizeS, 10, 3, "49.99", ""),
	}
	images := newTestImages(productID, 9)

	idx := NewVariantIndex(variants, images)

	// First color gets images[0:3].
	got := idx.ImagesForColor(black.ID)
	if len(got) != 3 || got[0].ID != images[0].ID || got[2].ID != images[2].ID {
		t.Errorf("first color should map to the first image block")
	}

	// Second color gets images[3:6].
	got = idx.ImagesForColor(white.ID)
	if len(got) != 3 || got[0].ID != images[3].ID || got[2].ID != images[5].ID {
		t.Errorf("second color should map to the second image block")
	}

	// Third and later colors fall back to the first block.
	got = idx.ImagesForColor(red.ID)
	if len(got) != 3 || got[0].ID != images[0].ID {
		t.Errorf("third color should fall back to the first image block")
	}

	// Unknown colors fall back to the first block too.
	got = idx.ImagesForColor(uuid.New())
	if len(got) != 3 || got[0].ID != images[0].ID {
		t.Errorf("unknown color should fall back to the first image block")
	}
}

func TestImagesForColorClampsShortImageLists(t *testing.T) {
	productID := uuid.New()
	black := newTestColor("Black")
	white := newTestColor("White")
	sizeS := newTestSize("S")

	variants := []domain.Variant{
		newTestVariant(productID, black, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, white, sizeS, 10, 3, "49.99", ""),
	}

	// Only 4 images: the second color's block [3:6] must clamp to [3:4].
	images := newTestImages(productID, 4)
	idx := NewVariantIndex(variants, images)

	got := idx.ImagesForColor(white.ID)
	if len(got) != 1 || got[0].ID != images[3].ID {
		t.Errorf("expected clamped second block of 1 image, got %d", len(got))
	}

	// Two images: the second block starts past the end and comes back empty.
	idx = NewVariantIndex(variants, images[:2])
	if got := idx.ImagesForColor(white.ID); len(got) != 0 {
		t.Errorf("expected empty block past the end, got %d images", len(got))
	}
}

func TestVariantForExactMatch(t *testing.T) {
	productID := uuid.New()
	black := newTestColor("Black")
	sizeS := newTestSize("S")
	sizeM := newTestSize("M")

	variants := []domain.Variant{
		newTestVariant(productID, black, sizeS, 10, 3, "49.99", ""),
		newTestVariant(productID, black, sizeM, 5, 3, "59.99", ""),
	}

	idx := NewVariantIndex(variants, nil)

	v := idx.VariantFor(black.ID, sizeM.ID)
	if v == nil {
		t.Fatal("expected a variant for (black, M)")
	}
	if v.Price != "59.99" {
		t.Errorf("resolved wrong variant: price %s", v.Price)
	}

	if idx.VariantFor(black.ID, uuid.New()) != nil {
		t.Error("expected nil for unknown size")
	}
	if idx.VariantFor(uuid.New(), sizeS.ID) != nil {
		t.Error("expected nil for unknown color")
	}
}

func TestEmptyVariantListDegrades(t *testing.T) {
	idx := NewVariantIndex(nil, nil)

	if len(idx.AvailableColors()) != 0 {
		t.Error("expected no colors")
	}
	if len(idx.AvailableSizes(uuid.New())) != 0 {
		t.Error("expected no sizes")
	}
	if len(idx.ImagesForColor(uuid.New())) != 0 {
		t.Error("expected no images")
	}
	if idx.VariantFor(uuid.New(), uuid.New()) != nil {
		t.Error("expected nil variant")
	}
}
