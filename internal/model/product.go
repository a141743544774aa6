package model

import (
	"encoding/json"
	"fmt"
)

// Variation is a specific size/colour combination of a product with its own
// stock count.
type Variation struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// Product is the normalized catalogue record used everywhere past the API
// boundary. The backend's wire shape is duck-typed (see NormalizeProduct);
// nothing outside this package should ever branch on wire shape.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Price       float64     `json:"price"`
	OriginPrice float64     `json:"originPrice,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	ThumbImage  string      `json:"thumbImage,omitempty"`
	Images      []string    `json:"images,omitempty"`
	Variations  []Variation `json:"variation,omitempty"`
	Sold        int         `json:"sold,omitempty"`
	IsActive    bool        `json:"isActive,omitempty"`
}

// VariationStock returns the stock for the given size/colour combination and
// whether that combination is declared on the product.
func (p *Product) VariationStock(size, color string) (int, bool) {
	for _, v := range p.Variations {
		if v.Size == size && v.Color == color {
			return v.Stock, true
		}
	}
	return 0, false
}

// TotalStock sums stock across all variations.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variations {
		total += v.Stock
	}
	return total
}

// productWire mirrors the backend's loosely-typed product document: Mongo-ish
// `_id` alongside `id`, thumbImage as either a string or an array, prices
// occasionally encoded as strings.
type productWire struct {
	MongoID     string          `json:"_id"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       json.Number     `json:"price"`
	OriginPrice json.Number     `json:"originPrice"`
	Currency    string          `json:"currency"`
	ThumbImage  json.RawMessage `json:"thumbImage"`
	Images      []string        `json:"images"`
	Variations  []Variation     `json:"variation"`
	Sold        int             `json:"sold"`
	IsActive    *bool           `json:"isActive"`
}

// NormalizeProduct decodes a raw backend product document into the single
// normalized Product shape. It tolerates `_id` vs `id`, scalar-or-array
// thumbnail images and string-encoded prices, preferring `_id` when both
// identifiers are present.
func NormalizeProduct(raw []byte) (Product, error) {
	var w productWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Product{}, fmt.Errorf("failed to decode product: %w", err)
	}

	p := Product{
		Name:        w.Name,
		Description: w.Description,
		Category:    w.Category,
		Currency:    w.Currency,
		Images:      w.Images,
		Variations:  w.Variations,
		Sold:        w.Sold,
		IsActive:    true,
	}

	p.ID = w.MongoID
	if p.ID == "" {
		p.ID = w.ID
	}
	if p.ID == "" {
		return Product{}, fmt.Errorf("product document has no id")
	}

	if w.Price != "" {
		price, err := w.Price.Float64()
		if err != nil {
			return Product{}, fmt.Errorf("invalid product price %q: %w", w.Price, err)
		}
		p.Price = price
	}
	if w.OriginPrice != "" {
		origin, err := w.OriginPrice.Float64()
		if err != nil {
			return Product{}, fmt.Errorf("invalid product origin price %q: %w", w.OriginPrice, err)
		}
		p.OriginPrice = origin
	}
	if w.IsActive != nil {
		p.IsActive = *w.IsActive
	}

	p.ThumbImage = normalizeThumb(w.ThumbImage)
	if p.ThumbImage == "" && len(p.Images) > 0 {
		p.ThumbImage = p.Images[0]
	}

	return p, nil
}

// NormalizeProducts decodes a JSON array of raw product documents.
func NormalizeProducts(raw []byte) ([]Product, error) {
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	products := make([]Product, 0, len(docs))
	for i, doc := range docs {
		p, err := NormalizeProduct(doc)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// normalizeThumb accepts a thumbnail field encoded as a string, an array of
// strings, or absent, and returns the first usable reference.
func normalizeThumb(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}

	return ""
}
