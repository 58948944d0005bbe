// Package memory provides process-local repositories used when no external
// store is configured.
package memory

import (
	"context"
	"sync"

	"github.com/iho/gocalc/internal/domain"
)

// HistoryRepository implements usecase.HistoryRepository with a
// mutex-guarded slice, newest first.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries []*domain.HistoryEntry
}

// NewHistoryRepository creates an empty HistoryRepository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Append stores entry as the newest history item.
func (r *HistoryRepository) Append(_ context.Context, entry *domain.HistoryEntry) error {
	cp := *entry

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = domain.PrependHistory(r.entries, &cp)
	return nil
}

// List returns up to limit entries, newest first.
func (r *HistoryRepository) List(_ context.Context, limit int) ([]*domain.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}

	out := make([]*domain.HistoryEntry, limit)
	for i := range out {
		cp := *r.entries[i]
		out[i] = &cp
	}
	return out, nil
}

// Clear removes all history entries.
func (r *HistoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}
