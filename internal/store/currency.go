package store

import (
	"errors"
	"fmt"
	"sync"

	"stylekart/internal/money"
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
)

// CurrencyStore holds the display currency every price-rendering component
// reads. The choice is persisted and changing it is a pure local state
// change; no rates are fetched.
type CurrencyStore struct {
	notifier

	mu       sync.Mutex
	selected money.Currency
	storage  storage.Store
	logger   zerolog.Logger
}

// NewCurrencyStore restores the persisted currency preference, falling back
// to def (and then to the base currency) when none is stored.
func NewCurrencyStore(st storage.Store, def money.Currency, logger zerolog.Logger) *CurrencyStore {
	c := &CurrencyStore{
		storage: st,
		logger:  logger.With().Str("component", "currency-store").Logger(),
	}

	var saved money.Currency
	err := st.Get(storage.KeyCurrency, &saved)
	switch {
	case err == nil && money.Supported(saved):
		c.selected = saved
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		c.logger.Warn().Err(err).Msg("failed to load currency preference")
		fallthrough
	default:
		if !money.Supported(def) {
			def = money.Base
		}
		c.selected = def
	}

	return c
}

// Selected returns the current display currency.
func (c *CurrencyStore) Selected() money.Currency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Converter returns a converter targeting the current display currency.
func (c *CurrencyStore) Converter() money.Converter {
	return money.NewConverter(c.Selected())
}

// SetCurrency switches the display currency. Unsupported codes are rejected
// and leave the selection unchanged.
func (c *CurrencyStore) SetCurrency(code money.Currency) error {
	if !money.Supported(code) {
		return fmt.Errorf("unsupported currency: %s", code)
	}

	c.mu.Lock()
	if c.selected == code {
		c.mu.Unlock()
		return nil
	}
	c.selected = code
	if err := c.storage.Put(storage.KeyCurrency, code); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist currency preference")
	}
	c.mu.Unlock()

	c.publish(Event{Kind: "currency", Level: LevelInfo, Message: "Currency changed to " + string(code)})
	return nil
}
