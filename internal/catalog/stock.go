// Package catalog derives presentation data from normalized products: stock
// badges and sale pricing. Everything here is a pure function of its inputs.
package catalog

import (
	"fmt"

	"stylekart/internal/model"
)

// StockStatus classifies a product's availability for badge rendering.
type StockStatus string

const (
	// StatusUnavailable means the product declares no variations at all.
	StatusUnavailable StockStatus = "unavailable"
	StatusOutOfStock  StockStatus = "outOfStock"
	StatusLowStock    StockStatus = "lowStock"
	StatusInStock     StockStatus = "inStock"
)

// Fixed badge thresholds.
const (
	lowStockMax = 5
	countedMax  = 20
)

// StockInfo is the derived badge state for a product or variation.
type StockInfo struct {
	Status StockStatus
	Stock  int
	// Counted is false for comfortably-stocked products whose badge shows
	// no number.
	Counted bool
}

// Stock returns the badge state for the product. When both size and colour
// are given the matching variation's stock is used; otherwise stock is
// summed across all variations.
func Stock(p *model.Product, size, color string) StockInfo {
	if p == nil || len(p.Variations) == 0 {
		return StockInfo{Status: StatusUnavailable}
	}

	total := 0
	if size != "" && color != "" {
		total, _ = p.VariationStock(size, color)
	} else {
		total = p.TotalStock()
	}

	switch {
	case total == 0:
		return StockInfo{Status: StatusOutOfStock}
	case total <= lowStockMax:
		return StockInfo{Status: StatusLowStock, Stock: total, Counted: true}
	case total <= countedMax:
		return StockInfo{Status: StatusInStock, Stock: total, Counted: true}
	default:
		return StockInfo{Status: StatusInStock, Stock: total}
	}
}

// Label renders the badge text.
func (s StockInfo) Label() string {
	switch s.Status {
	case StatusOutOfStock:
		return "Out of Stock"
	case StatusLowStock:
		return fmt.Sprintf("Low Stock (%d)", s.Stock)
	case StatusInStock:
		if s.Counted {
			return fmt.Sprintf("In Stock (%d)", s.Stock)
		}
		return "In Stock"
	default:
		return "N/A"
	}
}
