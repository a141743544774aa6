package catalog

import (
	"math"

	"stylekart/internal/money"
)

// PercentOff returns the whole-percent saving of price against originPrice,
// floored. It is 0 whenever originPrice is absent or not strictly greater
// than price, so callers can suppress the badge on a zero return.
func PercentOff(price, originPrice float64) int {
	if originPrice <= 0 || originPrice <= price {
		return 0
	}
	return int(math.Floor(100 * (1 - price/originPrice)))
}

// PriceTag is the render-ready price block for a product card.
type PriceTag struct {
	Current     string
	Original    string
	PercentOff  int
	HasDiscount bool
}

// Tag formats the current and (when discounted) original price in the
// display currency. The discount badge is present only for a real saving;
// never a "0%" or negative badge.
func Tag(conv money.Converter, price, originPrice float64, native money.Currency) PriceTag {
	tag := PriceTag{Current: conv.Format(price, native)}

	pct := PercentOff(price, originPrice)
	if pct > 0 {
		tag.Original = conv.Format(originPrice, native)
		tag.PercentOff = pct
		tag.HasDiscount = true
	}

	return tag
}
