package domain

import "github.com/google/uuid"

// CartItem is a snapshot of a variant at add-to-cart time. The pair
// (ProductID, VariantID) is the item's identity: a cart never holds two
// entries with the same pair, a repeated add merges by summing quantity.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Image     string    `json:"image"`
	Brand     string    `json:"brand,omitempty"`
	// OriginalPrice is the pre-discount price, zero when no discount
	// was active at add time.
	OriginalPrice float64 `json:"original_price,omitempty"`
}

// SameIdentity reports whether two cart items refer to the same
// purchasable unit.
func (i CartItem) SameIdentity(other CartItem) bool {
	return i.ProductID == other.ProductID && i.VariantID == other.VariantID
}

// WishlistItem is a saved product. Identity is the product ID alone;
// adding an already-present product is a no-op and the first-added
// snapshot wins (price and image are not refreshed).
type WishlistItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
}
