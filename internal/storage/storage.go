// Package storage persists small pieces of client state (cart lines, the
// selected currency, the auth session) as JSON blobs keyed by name. It is the
// storefront's analog of browser local storage: single-writer, last write
// wins, not synchronized across concurrent processes.
package storage

import "errors"

// Well-known state keys.
const (
	KeyCart      = "cart"
	KeyGuestCart = "guest-cart"
	KeyWishlist  = "wishlist"
	KeyCurrency  = "currency"
	KeyLanguage  = "language"
	KeySession   = "session"
)

// ErrNotFound is returned when no value has been stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// Store reads and writes JSON-serialisable values by key.
type Store interface {
	// Get unmarshals the value stored under key into out. Returns
	// ErrNotFound when the key has never been written or was deleted.
	Get(key string, out any) error

	// Put marshals value and stores it under key, replacing any previous
	// value.
	Put(key string, value any) error

	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(key string) error
}
