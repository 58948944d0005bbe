package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language selects the display language for labels and number formatting.
type Language string

const (
	LanguageEN Language = "en"
	LanguageUR Language = "ur"
)

// ParseLanguage parses a language code. An empty code selects English.
func ParseLanguage(code string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case "", LanguageEN:
		return LanguageEN, nil
	case LanguageUR:
		return LanguageUR, nil
	default:
		return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, code)
	}
}

// Tag returns the locale used to format numbers.
func (l Language) Tag() language.Tag {
	if l == LanguageUR {
		return language.Urdu
	}
	return language.English
}

// Label is a bilingual display string.
type Label struct {
	EN string
	UR string
}

// In resolves the label for a language, falling back to English.
func (l Label) In(lang Language) string {
	if lang == LanguageUR && l.UR != "" {
		return l.UR
	}
	return l.EN
}
