package store

import (
	"testing"

	"stylekart/internal/money"
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyStore_DefaultsWhenNothingPersisted(t *testing.T) {
	st := storage.NewMemStore()
	c := NewCurrencyStore(st, money.EUR, zerolog.Nop())

	assert.Equal(t, money.EUR, c.Selected())
}

func TestCurrencyStore_RestoresPersistedChoice(t *testing.T) {
	st := storage.NewMemStore()

	first := NewCurrencyStore(st, money.USD, zerolog.Nop())
	require.NoError(t, first.SetCurrency(money.INR))

	second := NewCurrencyStore(st, money.USD, zerolog.Nop())
	assert.Equal(t, money.INR, second.Selected())
}

func TestCurrencyStore_RejectsUnsupportedCode(t *testing.T) {
	st := storage.NewMemStore()
	c := NewCurrencyStore(st, money.USD, zerolog.Nop())

	err := c.SetCurrency(money.Currency("BTC"))
	assert.Error(t, err)
	assert.Equal(t, money.USD, c.Selected())
}

func TestCurrencyStore_NotifiesOnChange(t *testing.T) {
	st := storage.NewMemStore()
	c := NewCurrencyStore(st, money.USD, zerolog.Nop())

	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, c.SetCurrency(money.GBP))
	require.NoError(t, c.SetCurrency(money.GBP)) // unchanged, no event

	assert.Len(t, events, 1)
}

func TestLanguageStore_PersistsSelection(t *testing.T) {
	st := storage.NewMemStore()

	first := NewLanguageStore(st, "en", zerolog.Nop())
	first.SetLanguage("fr")

	second := NewLanguageStore(st, "en", zerolog.Nop())
	assert.Equal(t, "fr", second.Selected())
}
