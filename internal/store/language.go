package store

import (
	"errors"
	"sync"

	"stylekart/internal/storage"

	"github.com/rs/zerolog"
)

// LanguageStore holds the persisted display-language preference.
type LanguageStore struct {
	notifier

	mu       sync.Mutex
	selected string
	storage  storage.Store
	logger   zerolog.Logger
}

// NewLanguageStore restores the persisted language, falling back to def.
func NewLanguageStore(st storage.Store, def string, logger zerolog.Logger) *LanguageStore {
	l := &LanguageStore{
		storage:  st,
		selected: def,
		logger:   logger.With().Str("component", "language-store").Logger(),
	}

	var saved string
	if err := st.Get(storage.KeyLanguage, &saved); err == nil && saved != "" {
		l.selected = saved
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		l.logger.Warn().Err(err).Msg("failed to load language preference")
	}

	return l
}

// Selected returns the current display language code.
func (l *LanguageStore) Selected() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// SetLanguage switches the display language.
func (l *LanguageStore) SetLanguage(code string) {
	l.mu.Lock()
	if l.selected == code {
		l.mu.Unlock()
		return
	}
	l.selected = code
	if err := l.storage.Put(storage.KeyLanguage, code); err != nil {
		l.logger.Error().Err(err).Msg("failed to persist language preference")
	}
	l.mu.Unlock()

	l.publish(Event{Kind: "language", Level: LevelInfo, Message: "Language changed"})
}
