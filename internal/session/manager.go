package session

import (
	"context"

	"stylekart/internal/api"
	"stylekart/internal/model"
	"stylekart/internal/store"

	"github.com/rs/zerolog"
)

// Manager drives the login/logout flows that touch more than the session
// store itself: on login the guest cart folds into the customer cart, on
// logout the cart is reset.
type Manager struct {
	client  *api.Client
	session *Store
	cart    *store.CartStore
	guest   *store.GuestCartStore
	logger  zerolog.Logger
}

// NewManager wires the session flows.
func NewManager(client *api.Client, session *Store, cart *store.CartStore, guest *store.GuestCartStore, logger zerolog.Logger) *Manager {
	return &Manager{
		client:  client,
		session: session,
		cart:    cart,
		guest:   guest,
		logger:  logger.With().Str("component", "session-manager").Logger(),
	}
}

// Login authenticates, stores the session, and merges any guest cart lines
// into the customer cart.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	resp, err := m.client.Login(ctx, creds)
	if err != nil {
		return model.User{}, err
	}

	m.session.Set(resp.Token, resp.User)
	m.guest.MergeInto(m.cart)

	m.logger.Info().Str("user_id", resp.User.ID).Msg("signed in")
	return resp.User, nil
}

// Register creates an account and signs it in, with the same guest cart
// merge as Login.
func (m *Manager) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	resp, err := m.client.Register(ctx, reg)
	if err != nil {
		return model.User{}, err
	}

	m.session.Set(resp.Token, resp.User)
	m.guest.MergeInto(m.cart)

	m.logger.Info().Str("user_id", resp.User.ID).Msg("registered and signed in")
	return resp.User, nil
}

// Logout clears the session and resets the cart.
func (m *Manager) Logout() {
	m.session.Clear()
	m.cart.Clear()
	m.logger.Info().Msg("signed out")
}
