package store

import (
	"testing"

	"stylekart/internal/model"
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareStore_RejectsFourthDistinctProduct(t *testing.T) {
	compare := NewCompareStore(zerolog.Nop())

	require.NoError(t, compare.Add("P1"))
	require.NoError(t, compare.Add("P2"))
	require.NoError(t, compare.Add("P3"))

	err := compare.Add("P4")
	assert.ErrorIs(t, err, model.ErrCompareLimitExceeded)
	assert.Equal(t, []string{"P1", "P2", "P3"}, compare.Items())
}

func TestCompareStore_ReAddingPresentProductIsNoOp(t *testing.T) {
	compare := NewCompareStore(zerolog.Nop())

	require.NoError(t, compare.Add("P1"))
	require.NoError(t, compare.Add("P1"))

	assert.Equal(t, []string{"P1"}, compare.Items())
}

func TestCompareStore_ToggleAtLimit(t *testing.T) {
	compare := NewCompareStore(zerolog.Nop())
	require.NoError(t, compare.Add("P1"))
	require.NoError(t, compare.Add("P2"))
	require.NoError(t, compare.Add("P3"))

	// Toggling a present member removes it even at the limit.
	require.NoError(t, compare.Toggle("P2"))
	assert.False(t, compare.Contains("P2"))

	// Toggling a new one back in now fits.
	require.NoError(t, compare.Toggle("P4"))
	assert.True(t, compare.Contains("P4"))
}

func TestWishlistStore_ToggleAddsThenRemoves(t *testing.T) {
	wishlist := NewWishlistStore(storage.NewMemStore(), zerolog.Nop())

	wishlist.Toggle("P1")
	assert.True(t, wishlist.Contains("P1"))

	wishlist.Toggle("P1")
	assert.False(t, wishlist.Contains("P1"))
}

func TestWishlistStore_AddAndRemoveAreIndependent(t *testing.T) {
	wishlist := NewWishlistStore(storage.NewMemStore(), zerolog.Nop())

	wishlist.Add("P1")
	wishlist.Add("P1")
	assert.Equal(t, []string{"P1"}, wishlist.Items())

	wishlist.Remove("P2") // absent, no-op
	wishlist.Remove("P1")
	assert.Empty(t, wishlist.Items())
}

func TestWishlistStore_PersistsAcrossReload(t *testing.T) {
	st := storage.NewMemStore()

	first := NewWishlistStore(st, zerolog.Nop())
	first.Add("P1")
	first.Add("P2")

	second := NewWishlistStore(st, zerolog.Nop())
	assert.Equal(t, []string{"P1", "P2"}, second.Items())
}

func TestCompareStore_LimitFailureEmitsErrorEvent(t *testing.T) {
	compare := NewCompareStore(zerolog.Nop())
	require.NoError(t, compare.Add("P1"))
	require.NoError(t, compare.Add("P2"))
	require.NoError(t, compare.Add("P3"))

	var events []Event
	compare.Subscribe(func(e Event) { events = append(events, e) })

	_ = compare.Add("P4")
	require.Len(t, events, 1)
	assert.Equal(t, LevelError, events[0].Level)
}
