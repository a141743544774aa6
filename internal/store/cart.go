package store

import (
	"errors"
	"fmt"
	"sync"

	"stylekart/internal/model"
	"stylekart/internal/money"
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Fallbacks when a product declares no variations at all.
const (
	defaultSize  = "M"
	defaultColor = "Black"
)

// CartLine is one (product, size, colour, quantity) entry. Identity is the
// (ProductID, Size, Color) triple; at most one line exists per identity.
type CartLine struct {
	ProductID   string         `json:"productId"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	OriginPrice float64        `json:"originPrice,omitempty"`
	Currency    money.Currency `json:"currency,omitempty"`
	Size        string         `json:"size"`
	Color       string         `json:"color"`
	Quantity    int            `json:"quantity"`
	Image       string         `json:"image,omitempty"`
}

// CartStore owns the ordered cart line sequence. Lines keep insertion order
// for display, persist across restarts, and are cleared when an order is
// placed.
type CartStore struct {
	notifier

	mu       sync.Mutex
	lines    []CartLine
	storage  storage.Store
	key      string
	currency *CurrencyStore
	logger   zerolog.Logger
}

// NewCartStore loads any persisted cart lines and returns the store. The
// currency store drives the display currency used by Total and may be shared
// with other price-rendering components.
func NewCartStore(st storage.Store, currency *CurrencyStore, logger zerolog.Logger) *CartStore {
	return newCartStore(st, storage.KeyCart, currency, logger)
}

func newCartStore(st storage.Store, key string, currency *CurrencyStore, logger zerolog.Logger) *CartStore {
	c := &CartStore{
		storage:  st,
		key:      key,
		currency: currency,
		logger:   logger.With().Str("component", "cart-store").Logger(),
	}

	if err := st.Get(key, &c.lines); err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.logger.Warn().Err(err).Msg("failed to load persisted cart, starting empty")
	}

	return c
}

// resolveVariation fills missing size/colour from the product's first
// declared variation so identity matching and defaulting agree.
func resolveVariation(p *model.Product, size, color string) (string, string) {
	if size == "" {
		if len(p.Variations) > 0 {
			size = p.Variations[0].Size
		} else {
			size = defaultSize
		}
	}
	if color == "" {
		if len(p.Variations) > 0 {
			color = p.Variations[0].Color
		} else {
			color = defaultColor
		}
	}
	return size, color
}

// AddToCart adds one unit of the product in the given variation. An existing
// identity-matching line has its quantity incremented instead of a second
// line being appended; the increment is rejected with ErrOutOfStock when the
// variation's stock figure would be exceeded.
func (c *CartStore) AddToCart(p model.Product, size, color string) error {
	size, color = resolveVariation(&p, size, color)

	c.mu.Lock()
	for i := range c.lines {
		line := &c.lines[i]
		if line.ProductID != p.ID || line.Size != size || line.Color != color {
			continue
		}

		if stock, ok := p.VariationStock(size, color); ok && line.Quantity+1 > stock {
			c.mu.Unlock()
			c.logger.Debug().
				Str("product_id", p.ID).
				Str("size", size).
				Str("color", color).
				Int("stock", stock).
				Msg("add rejected, variation out of stock")
			c.publish(Event{Kind: "cart", Level: LevelError, Message: model.ErrOutOfStock.Message})
			return model.ErrOutOfStock
		}

		line.Quantity++
		c.persistLocked()
		c.mu.Unlock()
		c.publish(Event{Kind: "cart", Level: LevelSuccess, Message: "Quantity updated in cart"})
		return nil
	}

	c.lines = append(c.lines, CartLine{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		OriginPrice: p.OriginPrice,
		Currency:    money.Currency(p.Currency),
		Size:        size,
		Color:       color,
		Quantity:    1,
		Image:       p.ThumbImage,
	})
	c.persistLocked()
	c.mu.Unlock()

	c.publish(Event{Kind: "cart", Level: LevelSuccess, Message: "Added to cart"})
	return nil
}

// UpdateQuantity sets the quantity of the identity-matching line, clamped to
// a minimum of 1. When product stock data is supplied and the requested
// quantity exceeds the variation's stock, the update is rejected with
// ErrInsufficientStock and the cart is left unchanged.
func (c *CartStore) UpdateQuantity(productID string, quantity int, size, color string, p *model.Product) error {
	if p != nil {
		if stock, ok := p.VariationStock(size, color); ok && quantity > stock {
			c.publish(Event{
				Kind:    "cart",
				Level:   LevelError,
				Message: fmt.Sprintf("Only %d items available in stock", stock),
			})
			return model.ErrInsufficientStock
		}
	}

	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	for i := range c.lines {
		line := &c.lines[i]
		if line.ProductID != productID {
			continue
		}
		if size != "" && line.Size != size {
			continue
		}
		if color != "" && line.Color != color {
			continue
		}
		line.Quantity = quantity
	}
	c.persistLocked()
	c.mu.Unlock()

	return nil
}

// RemoveProduct removes every line for the product regardless of variation.
// This is deliberately coarser than the (product, size, colour) identity used
// by AddToCart; callers that know the variation should use RemoveLine.
func (c *CartStore) RemoveProduct(productID string) {
	c.mu.Lock()
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	c.persistLocked()
	c.mu.Unlock()

	c.publish(Event{Kind: "cart", Level: LevelSuccess, Message: "Removed from cart"})
}

// RemoveLine removes only the line matching the full identity triple.
func (c *CartStore) RemoveLine(productID, size, color string) {
	c.mu.Lock()
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID == productID && line.Size == size && line.Color == color {
			continue
		}
		kept = append(kept, line)
	}
	c.lines = kept
	c.persistLocked()
	c.mu.Unlock()

	c.publish(Event{Kind: "cart", Level: LevelSuccess, Message: "Removed from cart"})
}

// Clear empties the cart. Called after an order is successfully placed.
func (c *CartStore) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.persistLocked()
	c.mu.Unlock()
}

// Items returns a copy of the cart lines in insertion order.
func (c *CartStore) Items() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]CartLine, len(c.lines))
	copy(items, c.lines)
	return items
}

// ItemCount returns the total unit count across all lines.
func (c *CartStore) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Contains reports whether any line references the product.
func (c *CartStore) Contains(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range c.lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// Total returns the cart total in the currently selected display currency.
// Each line's native price is converted before summing, so the total tracks
// both cart contents and currency switches.
func (c *CartStore) Total() float64 {
	conv := c.currency.Converter()

	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		unit := decimal.NewFromFloat(conv.Convert(line.Price, line.Currency))
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	f, _ := total.Round(2).Float64()
	return f
}

// persistLocked writes the current lines to storage. Callers hold c.mu.
func (c *CartStore) persistLocked() {
	if err := c.storage.Put(c.key, c.lines); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist cart")
	}
}
