package catalog

import (
	"math"
	"strconv"
	"strings"

	"modamart/internal/domain"
)

// Price helpers convert a variant's decimal-string prices into the
// numbers the storefront displays. They are display-only: no currency
// arithmetic beyond this ever happens, and every function degrades to
// zero on a nil variant or malformed input so a page stays renderable.

// CurrentPrice returns the price the shopper pays: the discount price
// when one is active, the regular price otherwise. Zero for nil.
func CurrentPrice(v *domain.Variant) float64 {
	if v == nil {
		return 0
	}
	if d := parsePrice(v.DiscountPrice); d > 0 {
		return d
	}
	return parsePrice(v.Price)
}

// OriginalPrice returns the pre-discount price, but only while a
// discount is active and the regular price actually exceeds it. Zero
// otherwise, which also guards against malformed rows where the
// discount price is at or above the regular price.
func OriginalPrice(v *domain.Variant) float64 {
	if v == nil {
		return 0
	}
	d := parsePrice(v.DiscountPrice)
	if d <= 0 {
		return 0
	}
	if p := parsePrice(v.Price); p > d {
		return p
	}
	return 0
}

// DiscountPercent returns the rounded percentage saved against the
// original price, or zero when no discount is active.
func DiscountPercent(v *domain.Variant) int {
	original := OriginalPrice(v)
	if original <= 0 {
		return 0
	}
	current := CurrentPrice(v)
	return int(math.Round((original - current) / original * 100))
}

func parsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
