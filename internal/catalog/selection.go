package catalog

import (
	"modamart/internal/domain"

	"github.com/google/uuid"
)

// Selection tracks the shopper's current color, size, quantity and
// gallery image for one product view. Transitions follow the storefront
// rules: picking a color auto-selects its first size and rewinds the
// gallery, quantity is clamped to a floor of one, and the size is only
// meaningful while a matching variant exists for the chosen color.
type Selection struct {
	index *VariantIndex

	ColorID    uuid.UUID
	SizeID     uuid.UUID
	Quantity   int
	ImageIndex int

	// maxQuantity caps ChangeQuantity when positive. The historical
	// behavior is no ceiling at all: the shopper may request more than
	// the advisory stock number and the order backend decides at
	// checkout. Enable deliberately via WithMaxQuantity.
	maxQuantity int
	clampStock  bool
}

// SelectionOption configures a Selection.
type SelectionOption func(*Selection)

// WithMaxQuantity enforces a fixed quantity ceiling (0 disables it).
func WithMaxQuantity(n int) SelectionOption {
	return func(s *Selection) { s.maxQuantity = n }
}

// WithStockCeiling clamps quantity to the selected variant's stock.
func WithStockCeiling() SelectionOption {
	return func(s *Selection) { s.clampStock = true }
}

// NewSelection starts a selection over the index, auto-selecting the
// first variant's color and size when any variant exists.
func NewSelection(index *VariantIndex, opts ...SelectionOption) *Selection {
	s := &Selection{
		index:    index,
		Quantity: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(index.variants) > 0 {
		s.SelectColor(index.variants[0].ColorID)
	}
	return s
}

// SelectColor switches to the color, auto-selects the first size
// available for it (or clears the size when it has none) and rewinds
// the gallery to the first image.
func (s *Selection) SelectColor(colorID uuid.UUID) {
	s.ColorID = colorID
	s.SizeID = uuid.Nil
	if sizes := s.index.AvailableSizes(colorID); len(sizes) > 0 {
		s.SizeID = sizes[0].ID
	}
	s.ImageIndex = 0
}

// SelectSize sets the size. Callers are expected to only offer sizes
// valid for the current color.
func (s *Selection) SelectSize(sizeID uuid.UUID) {
	s.SizeID = sizeID
}

// ChangeQuantity adjusts quantity by delta, clamped to a floor of one
// and, when configured, to the ceiling or the variant's stock.
func (s *Selection) ChangeQuantity(delta int) {
	q := s.Quantity + delta
	if q < 1 {
		q = 1
	}
	if s.maxQuantity > 0 && q > s.maxQuantity {
		q = s.maxQuantity
	}
	if s.clampStock {
		if v := s.Variant(); v != nil && q > v.Stock {
			q = v.Stock
			if q < 1 {
				q = 1
			}
		}
	}
	s.Quantity = q
}

// SelectImage moves the gallery, clamped to the current color's image
// block so out-of-range indexes cannot escape the gallery.
func (s *Selection) SelectImage(index int) {
	images := s.index.ImagesForColor(s.ColorID)
	if index < 0 || len(images) == 0 {
		index = 0
	} else if index >= len(images) {
		index = len(images) - 1
	}
	s.ImageIndex = index
}

// Variant resolves the currently selected variant, nil when the
// (color, size) pair matches nothing.
func (s *Selection) Variant() *domain.Variant {
	if s.ColorID == uuid.Nil || s.SizeID == uuid.Nil {
		return nil
	}
	return s.index.VariantFor(s.ColorID, s.SizeID)
}

// CanAddToCart reports whether the selection resolves to a variant with
// stock on hand.
func (s *Selection) CanAddToCart() bool {
	v := s.Variant()
	return v != nil && v.Stock > 0
}
