package store

import (
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
)

// GuestCartStore holds cart lines accumulated before login under a separate
// persistence key so they survive the login redirect.
type GuestCartStore struct {
	*CartStore
}

// NewGuestCartStore loads any persisted guest cart.
func NewGuestCartStore(st storage.Store, currency *CurrencyStore, logger zerolog.Logger) *GuestCartStore {
	return &GuestCartStore{
		CartStore: newCartStore(st, storage.KeyGuestCart, currency, logger),
	}
}

// MergeInto folds the guest lines into the signed-in customer's cart and
// empties the guest cart. Identity-matching lines merge quantities directly;
// stock is re-checked by the backend at checkout, not here.
func (g *GuestCartStore) MergeInto(cart *CartStore) {
	lines := g.Items()
	g.Clear()

	cart.mu.Lock()
	for _, line := range lines {
		merged := false
		for i := range cart.lines {
			existing := &cart.lines[i]
			if existing.ProductID == line.ProductID && existing.Size == line.Size && existing.Color == line.Color {
				existing.Quantity += line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.lines = append(cart.lines, line)
		}
	}
	cart.persistLocked()
	cart.mu.Unlock()

	if len(lines) > 0 {
		cart.publish(Event{Kind: "cart", Level: LevelInfo, Message: "Your saved items were added to your cart"})
	}
}
