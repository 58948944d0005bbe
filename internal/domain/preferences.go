package domain

import (
	"fmt"
	"strings"
	"time"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name. An empty name selects the light theme.
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case "", ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: unsupported theme %q", ErrInvalidInput, name)
	}
}

// Preferences is the per-client application state.
type Preferences struct {
	ClientID  string
	Language  Language
	Theme     Theme
	UpdatedAt time.Time
}

// DefaultPreferences returns the preferences used for unknown clients.
func DefaultPreferences(clientID string) *Preferences {
	return &Preferences{
		ClientID: clientID,
		Language: LanguageEN,
		Theme:    ThemeLight,
	}
}

// Validate validates preferences.
func (p *Preferences) Validate() error {
	if strings.TrimSpace(p.ClientID) == "" {
		return fmt.Errorf("%w: client id cannot be empty", ErrInvalidInput)
	}
	if _, err := ParseLanguage(string(p.Language)); err != nil {
		return err
	}
	if _, err := ParseTheme(string(p.Theme)); err != nil {
		return err
	}
	return nil
}
