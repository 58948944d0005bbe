package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gocalc/internal/domain"
)

const (
	fieldLanguage  = "language"
	fieldTheme     = "theme"
	fieldUpdatedAt = "updated_at"
)

// PreferencesRepository implements usecase.PreferencesRepository with one
// Redis hash per client.
type PreferencesRepository struct {
	client *redis.Client
	prefix string
}

// NewPreferencesRepository creates a new PreferencesRepository.
func NewPreferencesRepository(client *redis.Client) *PreferencesRepository {
	return &PreferencesRepository{
		client: client,
		prefix: keyPrefix + "preferences:",
	}
}

// Get loads preferences for a client.
func (r *PreferencesRepository) Get(ctx context.Context, clientID string) (*domain.Preferences, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+clientID).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrPreferencesNotFound
	}

	lang, err := domain.ParseLanguage(fields[fieldLanguage])
	if err != nil {
		return nil, fmt.Errorf("stored preferences for %s: %w", clientID, err)
	}
	theme, err := domain.ParseTheme(fields[fieldTheme])
	if err != nil {
		return nil, fmt.Errorf("stored preferences for %s: %w", clientID, err)
	}

	prefs := &domain.Preferences{
		ClientID: clientID,
		Language: lang,
		Theme:    theme,
	}
	if ts, ok := fields[fieldUpdatedAt]; ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			prefs.UpdatedAt = parsed
		}
	}

	return prefs, nil
}

// Save writes preferences for a client.
func (r *PreferencesRepository) Save(ctx context.Context, prefs *domain.Preferences) error {
	return r.client.HSet(ctx, r.prefix+prefs.ClientID,
		fieldLanguage, string(prefs.Language),
		fieldTheme, string(prefs.Theme),
		fieldUpdatedAt, prefs.UpdatedAt.UTC().Format(time.RFC3339Nano),
	).Err()
}
