package store

import (
	"stylekart/internal/model"

	"github.com/rs/zerolog"
)

// CompareLimit is the maximum number of products the compare tray holds.
const CompareLimit = 3

// CompareStore is a bounded set of product IDs for side-by-side comparison.
// Insertion past the limit is rejected, never evicted.
type CompareStore struct {
	notifier
	set    productSet
	logger zerolog.Logger
}

// NewCompareStore returns an empty compare tray.
func NewCompareStore(logger zerolog.Logger) *CompareStore {
	return &CompareStore{
		logger: logger.With().Str("component", "compare-store").Logger(),
	}
}

// Contains reports whether the product is in the tray.
func (c *CompareStore) Contains(productID string) bool {
	c.set.mu.Lock()
	defer c.set.mu.Unlock()
	return c.set.contains(productID)
}

// Add puts the product in the tray. A 4th distinct product is rejected with
// ErrCompareLimitExceeded and the tray is left unchanged.
func (c *CompareStore) Add(productID string) error {
	c.set.mu.Lock()
	if c.set.contains(productID) {
		c.set.mu.Unlock()
		return nil
	}
	if len(c.set.ids) >= CompareLimit {
		c.set.mu.Unlock()
		c.publish(Event{Kind: "compare", Level: LevelError, Message: model.ErrCompareLimitExceeded.Message})
		return model.ErrCompareLimitExceeded
	}
	c.set.add(productID)
	c.set.mu.Unlock()

	c.publish(Event{Kind: "compare", Level: LevelSuccess, Message: "Added to compare"})
	return nil
}

// Remove takes the product out of the tray.
func (c *CompareStore) Remove(productID string) {
	c.set.mu.Lock()
	changed := c.set.remove(productID)
	c.set.mu.Unlock()

	if changed {
		c.publish(Event{Kind: "compare", Level: LevelSuccess, Message: "Removed from compare"})
	}
}

// Toggle adds the product if absent, removes it if present. The add may fail
// against the tray limit.
func (c *CompareStore) Toggle(productID string) error {
	if c.Contains(productID) {
		c.Remove(productID)
		return nil
	}
	return c.Add(productID)
}

// Items returns the compared product IDs in insertion order.
func (c *CompareStore) Items() []string {
	c.set.mu.Lock()
	defer c.set.mu.Unlock()
	return c.set.items()
}
