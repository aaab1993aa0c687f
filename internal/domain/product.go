package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product status values.
const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
	ProductStatusArchived  = "archived"
)

// Product is the catalog aggregate served to the storefront: the base
// product row plus its images and color/size variants. The storefront
// treats it as read-only; only the admin endpoints mutate it.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	BrandID     uuid.UUID `json:"brand_id" db:"brand_id"`
	BrandName   string    `json:"brand" db:"brand_name"`
	Status      string    `json:"status" db:"status"`
	// Category is a slash-separated path, at most four levels deep
	// ("women/clothing/dresses/midi").
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Images   []Image   `json:"images"`
	Variants []Variant `json:"variants"`
}

// Color is a named color referenced by variants.
type Color struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Size is a named size referenced by variants.
type Size struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Variant is a purchasable (color, size) unit of a product with its own
// stock and pricing. Prices travel as decimal strings and are only
// converted to floats for display; no settlement math happens here.
// For a given product the (color_id, size_id) pair identifies at most
// one active variant.
type Variant struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ProductID         uuid.UUID `json:"product_id" db:"product_id"`
	ColorID           uuid.UUID `json:"color_id" db:"color_id"`
	SizeID            uuid.UUID `json:"size_id" db:"size_id"`
	Stock             int       `json:"stock" db:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	Price             string    `json:"price" db:"price"`
	// DiscountPrice is empty or "0.00" when no discount is active.
	DiscountPrice string    `json:"discount_price" db:"discount_price"`
	SKU           string    `json:"sku" db:"sku"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	Color         Color     `json:"color"`
	Size          Size      `json:"size"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Image is a product photo. Images carry no color foreign key; the
// storefront maps them to colors positionally (see catalog.VariantIndex).
type Image struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	URL       string    `json:"url" db:"url"`
	Position  int       `json:"position" db:"position"`
}
