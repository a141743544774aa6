package store

import (
	"errors"

	"stylekart/internal/storage"

	"github.com/rs/zerolog"
)

// WishlistStore is a persisted set of saved product IDs. Add/Remove are
// independent operations; Toggle is the convenience built on top of them
// that the heart-icon UI uses.
type WishlistStore struct {
	notifier
	set     productSet
	storage storage.Store
	logger  zerolog.Logger
}

// NewWishlistStore loads any persisted wishlist and returns the store.
func NewWishlistStore(st storage.Store, logger zerolog.Logger) *WishlistStore {
	w := &WishlistStore{
		storage: st,
		logger:  logger.With().Str("component", "wishlist-store").Logger(),
	}

	if err := st.Get(storage.KeyWishlist, &w.set.ids); err != nil && !errors.Is(err, storage.ErrNotFound) {
		w.logger.Warn().Err(err).Msg("failed to load persisted wishlist")
	}

	return w
}

// Contains reports whether the product is wishlisted.
func (w *WishlistStore) Contains(productID string) bool {
	w.set.mu.Lock()
	defer w.set.mu.Unlock()
	return w.set.contains(productID)
}

// Add puts the product on the wishlist. Adding a present product is a no-op.
func (w *WishlistStore) Add(productID string) {
	w.set.mu.Lock()
	changed := w.set.add(productID)
	if changed {
		w.persistLocked()
	}
	w.set.mu.Unlock()

	if changed {
		w.publish(Event{Kind: "wishlist", Level: LevelSuccess, Message: "Added to wishlist"})
	}
}

// Remove takes the product off the wishlist. Removing an absent product is a
// no-op.
func (w *WishlistStore) Remove(productID string) {
	w.set.mu.Lock()
	changed := w.set.remove(productID)
	if changed {
		w.persistLocked()
	}
	w.set.mu.Unlock()

	if changed {
		w.publish(Event{Kind: "wishlist", Level: LevelSuccess, Message: "Removed from wishlist"})
	}
}

// Toggle adds the product if absent, removes it if present.
func (w *WishlistStore) Toggle(productID string) {
	if w.Contains(productID) {
		w.Remove(productID)
		return
	}
	w.Add(productID)
}

// Items returns the wishlisted product IDs in insertion order.
func (w *WishlistStore) Items() []string {
	w.set.mu.Lock()
	defer w.set.mu.Unlock()
	return w.set.items()
}

func (w *WishlistStore) persistLocked() {
	if err := w.storage.Put(storage.KeyWishlist, w.set.ids); err != nil {
		w.logger.Error().Err(err).Msg("failed to persist wishlist")
	}
}
