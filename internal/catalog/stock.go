package catalog

import "modamart/internal/domain"

// StockStatus classifies a variant's advisory stock level. Stock is a
// point-in-time read for display; nothing here reserves inventory.
type StockStatus string

const (
	// StockUnknown means no variant is resolved yet (no color/size chosen).
	StockUnknown StockStatus = "unknown"
	StockOut     StockStatus = "out_of_stock"
	StockLow     StockStatus = "low_stock"
	StockIn      StockStatus = "in_stock"
)

// StatusOf classifies the variant's stock snapshot.
func StatusOf(v *domain.Variant) StockStatus {
	switch {
	case v == nil:
		return StockUnknown
	case v.Stock == 0:
		return StockOut
	case v.Stock <= v.LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}
