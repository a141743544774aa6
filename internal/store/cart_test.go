package store

import (
	"testing"

	"stylekart/internal/model"
	"stylekart/internal/money"
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) (*CartStore, storage.Store) {
	t.Helper()
	st := storage.NewMemStore()
	currency := NewCurrencyStore(st, money.INR, zerolog.Nop())
	return NewCartStore(st, currency, zerolog.Nop()), st
}

func testProduct() model.Product {
	return model.Product{
		ID:       "P001",
		Name:     "Linen Shirt",
		Price:    1000,
		Currency: "INR",
		Variations: []model.Variation{
			{Size: "M", Color: "Black", Stock: 3},
			{Size: "L", Color: "White", Stock: 10},
		},
	}
}

func TestCartStore_AddTwiceMergesIntoOneLine(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()

	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "M", "Black"))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartStore_DistinctVariationsAreDistinctLines(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()

	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "L", "White"))

	assert.Len(t, cart.Items(), 2)
}

func TestCartStore_AddDefaultsToFirstVariation(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()

	require.NoError(t, cart.AddToCart(p, "", ""))
	require.NoError(t, cart.AddToCart(p, "", ""))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "M", items[0].Size)
	assert.Equal(t, "Black", items[0].Color)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartStore_AddRejectedWhenStockExceeded(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()

	// M/Black has stock 3
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "M", "Black"))

	err := cart.AddToCart(p, "M", "Black")
	assert.ErrorIs(t, err, model.ErrOutOfStock)
	assert.Equal(t, 3, cart.Items()[0].Quantity)
}

func TestCartStore_AddEmitsEvents(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()

	var events []Event
	cart.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.Len(t, events, 1)
	assert.Equal(t, LevelSuccess, events[0].Level)
	assert.Equal(t, "cart", events[0].Kind)
}

func TestCartStore_UpdateQuantityClampsToOne(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()
	require.NoError(t, cart.AddToCart(p, "M", "Black"))

	require.NoError(t, cart.UpdateQuantity("P001", 0, "M", "Black", nil))
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	require.NoError(t, cart.UpdateQuantity("P001", -5, "M", "Black", nil))
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartStore_UpdateQuantityRejectsBeyondStock(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()
	require.NoError(t, cart.AddToCart(p, "M", "Black"))

	err := cart.UpdateQuantity("P001", 5, "M", "Black", &p)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartStore_RemoveProductDropsAllVariations(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "L", "White"))

	cart.RemoveProduct("P001")
	assert.Empty(t, cart.Items())
}

func TestCartStore_RemoveLineDropsOnlyMatchingVariation(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "L", "White"))

	cart.RemoveLine("P001", "M", "Black")

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)
}

func TestCartStore_TotalTracksCurrencySwitch(t *testing.T) {
	st := storage.NewMemStore()
	currency := NewCurrencyStore(st, money.INR, zerolog.Nop())
	cart := NewCartStore(st, currency, zerolog.Nop())

	p := testProduct() // 1000 INR
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "M", "Black"))

	assert.InDelta(t, 2000, cart.Total(), 0.001)

	require.NoError(t, currency.SetCurrency(money.USD))
	// 2000 INR at 83.12/USD, rounded per line
	assert.InDelta(t, 24.06, cart.Total(), 0.001)
}

func TestCartStore_PersistsAcrossReload(t *testing.T) {
	st := storage.NewMemStore()
	currency := NewCurrencyStore(st, money.INR, zerolog.Nop())

	cart := NewCartStore(st, currency, zerolog.Nop())
	require.NoError(t, cart.AddToCart(testProduct(), "M", "Black"))

	reloaded := NewCartStore(st, currency, zerolog.Nop())
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "P001", reloaded.Items()[0].ProductID)
}

func TestCartStore_ClearAndCounts(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct()
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, cart.AddToCart(p, "L", "White"))

	assert.Equal(t, 3, cart.ItemCount())
	assert.True(t, cart.Contains("P001"))

	cart.Clear()
	assert.Empty(t, cart.Items())
	assert.Equal(t, 0, cart.ItemCount())
	assert.False(t, cart.Contains("P001"))
}

func TestGuestCartStore_MergeInto(t *testing.T) {
	st := storage.NewMemStore()
	currency := NewCurrencyStore(st, money.INR, zerolog.Nop())
	cart := NewCartStore(st, currency, zerolog.Nop())
	guest := NewGuestCartStore(st, currency, zerolog.Nop())

	p := testProduct()
	require.NoError(t, cart.AddToCart(p, "M", "Black"))
	require.NoError(t, guest.AddToCart(p, "M", "Black"))
	require.NoError(t, guest.AddToCart(p, "L", "White"))

	guest.MergeInto(cart)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity) // merged identity line
	assert.Empty(t, guest.Items())
}
