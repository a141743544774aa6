// Package session owns the locally persisted auth state (token + profile)
// and the navigation guards built on it.
package session

import (
	"errors"
	"sync"

	"stylekart/internal/model"
	"stylekart/internal/storage"

	"github.com/rs/zerolog"
)

// Session is the persisted sign-in state.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store holds the current session in memory and mirrors it to client
// storage. Its Token method satisfies the api client's TokenSource.
type Store struct {
	mu      sync.Mutex
	current Session
	storage storage.Store
	logger  zerolog.Logger
}

// NewStore restores any persisted session.
func NewStore(st storage.Store, logger zerolog.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger.With().Str("component", "session-store").Logger(),
	}

	if err := st.Get(storage.KeySession, &s.current); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn().Err(err).Msg("failed to load persisted session")
	}

	return s
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Token
}

// User returns the signed-in profile and whether one exists.
func (s *Store) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.User, s.current.Token != ""
}

// SignedIn reports whether a token is present.
func (s *Store) SignedIn() bool {
	return s.Token() != ""
}

// Set stores a fresh session after login or registration.
func (s *Store) Set(token string, user model.User) {
	s.mu.Lock()
	s.current = Session{Token: token, User: user}
	if err := s.storage.Put(storage.KeySession, s.current); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session")
	}
	s.mu.Unlock()
}

// Clear tears the session down. Called on logout and on any 401.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = Session{}
	if err := s.storage.Delete(storage.KeySession); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear persisted session")
	}
	s.mu.Unlock()
}
