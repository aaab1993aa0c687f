package catalog

import (
	"modamart/internal/domain"

	"github.com/google/uuid"
)

// DefaultImagesPerColor is the number of consecutive images assumed to
// belong to each color. The backend does not tag images with a color,
// so the storefront relies on upload order: the first block of images
// belongs to the first color introduced among the variants, the next
// block to the second color, and so on. This is an upload-time
// convention, not a schema constraint.
const DefaultImagesPerColor = 3

type colorSizePair struct {
	colorID uuid.UUID
	sizeID  uuid.UUID
}

// VariantIndex derives UI-navigable lookup structures from a product's
// flat variant list: available colors, sizes per color, image blocks
// per color and exact (color, size) variant resolution. All methods are
// total: an empty variant list yields empty results, never a panic.
type VariantIndex struct {
	variants       []domain.Variant
	images         []domain.Image
	colors         []domain.Color
	byPair         map[colorSizePair]int
	imagesPerColor int
}

// IndexOption configures a VariantIndex.
type IndexOption func(*VariantIndex)

// WithImagesPerColor overrides the per-color image block size.
func WithImagesPerColor(n int) IndexOption {
	return func(x *VariantIndex) {
		if n > 0 {
			x.imagesPerColor = n
		}
	}
}

// NewVariantIndex builds lookup structures over the product's variants
// and images. Colors keep first-seen order among the variants.
func NewVariantIndex(variants []domain.Variant, images []domain.Image, opts ...IndexOption) *VariantIndex {
	x := &VariantIndex{
		variants:       variants,
		images:         images,
		byPair:         make(map[colorSizePair]int, len(variants)),
		imagesPerColor: DefaultImagesPerColor,
	}
	for _, opt := range opts {
		opt(x)
	}

	seen := make(map[uuid.UUID]bool, len(variants))
	for i, v := range variants {
		if !seen[v.ColorID] {
			seen[v.ColorID] = true
			x.colors = append(x.colors, v.Color)
		}
		pair := colorSizePair{colorID: v.ColorID, sizeID: v.SizeID}
		if _, dup := x.byPair[pair]; !dup {
			x.byPair[pair] = i
		}
	}
	return x
}

// AvailableColors returns the distinct colors among the variants,
// deduplicated by ID, in the order they were first introduced.
func (x *VariantIndex) AvailableColors() []domain.Color {
	return x.colors
}

// AvailableSizes returns the sizes of every variant matching the given
// color, in variant-array order. Sizes are not deduplicated; the
// backend never produces two variants with the same (color, size) pair.
func (x *VariantIndex) AvailableSizes(colorID uuid.UUID) []domain.Size {
	var sizes []domain.Size
	for _, v := range x.variants {
		if v.ColorID == colorID {
			sizes = append(sizes, v.Size)
		}
	}
	return sizes
}

// ImagesForColor returns the positional image block for a color: the
// first color gets the first block, the second color the second block,
// and any later or unknown color falls back to the first block. Bounds
// are clamped so a short image list degrades instead of panicking.
func (x *VariantIndex) ImagesForColor(colorID uuid.UUID) []domain.Image {
	start := 0
	if x.colorRank(colorID) == 1 {
		start = x.imagesPerColor
	}
	end := start + x.imagesPerColor

	if start > len(x.images) {
		start = len(x.images)
	}
	if end > len(x.images) {
		end = len(x.images)
	}
	return x.images[start:end]
}

// VariantFor resolves the exact variant for a (color, size) pair, or
// nil when none exists.
func (x *VariantIndex) VariantFor(colorID, sizeID uuid.UUID) *domain.Variant {
	i, ok := x.byPair[colorSizePair{colorID: colorID, sizeID: sizeID}]
	if !ok {
		return nil
	}
	return &x.variants[i]
}

// colorRank returns the 0-based position of the color within
// AvailableColors, or -1 when the color is unknown.
func (x *VariantIndex) colorRank(colorID uuid.UUID) int {
	for i, c := range x.colors {
		if c.ID == colorID {
			return i
		}
	}
	return -1
}
