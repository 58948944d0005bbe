package memory

import (
	"context"
	"sync"

	"github.com/iho/gocalc/internal/domain"
)

// PreferencesRepository implements usecase.PreferencesRepository with a map.
type PreferencesRepository struct {
	mu    sync.RWMutex
	prefs map[string]domain.Preferences
}

// NewPreferencesRepository creates an empty PreferencesRepository.
func NewPreferencesRepository() *PreferencesRepository {
	return &PreferencesRepository{prefs: make(map[string]domain.Preferences)}
}

// Get loads preferences for a client.
func (r *PreferencesRepository) Get(_ context.Context, clientID string) (*domain.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prefs[clientID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return &p, nil
}

// Save writes preferences for a client.
func (r *PreferencesRepository) Save(_ context.Context, prefs *domain.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefs.ClientID] = *prefs
	return nil
}
