package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gocalc/internal/domain"
)

// PreferencesUseCase reads and writes per-client preferences.
type PreferencesUseCase struct {
	repo PreferencesRepository
}

// NewPreferencesUseCase creates a new PreferencesUseCase.
func NewPreferencesUseCase(repo PreferencesRepository) *PreferencesUseCase {
	return &PreferencesUseCase{repo: repo}
}

// GetPreferences returns stored preferences, or the defaults for unknown clients.
func (uc *PreferencesUseCase) GetPreferences(ctx context.Context, clientID string) (*domain.Preferences, error) {
	prefs, err := uc.repo.Get(ctx, clientID)
	if errors.Is(err, domain.ErrPreferencesNotFound) {
		return domain.DefaultPreferences(clientID), nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// UpdatePreferencesInput represents input for updating preferences. Empty
// fields keep their current value.
type UpdatePreferencesInput struct {
	ClientID string
	Language string
	Theme    string
}

// UpdatePreferences merges the input into the stored preferences.
func (uc *PreferencesUseCase) UpdatePreferences(ctx context.Context, input UpdatePreferencesInput) (*domain.Preferences, error) {
	prefs, err := uc.GetPreferences(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if input.Language != "" {
		lang, err := domain.ParseLanguage(input.Language)
		if err != nil {
			return nil, err
		}
		prefs.Language = lang
	}

	if input.Theme != "" {
		theme, err := domain.ParseTheme(input.Theme)
		if err != nil {
			return nil, err
		}
		prefs.Theme = theme
	}

	prefs.UpdatedAt = time.Now().UTC()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, prefs); err != nil {
		return nil, err
	}

	return prefs, nil
}
