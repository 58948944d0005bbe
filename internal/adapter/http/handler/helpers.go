package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/domain"
)

const maxBodyBytes = 1 << 20

// statusBySentinel is checked in order; the first errors.Is match wins.
var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrCalculatorNotFound, http.StatusNotFound},
	{domain.ErrPreferencesNotFound, http.StatusNotFound},
	{domain.ErrHistoryUnavailable, http.StatusServiceUnavailable},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Message: details})
}

// writeDomainError writes err with the status mapDomainError picks.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

func mapDomainError(err error) int {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// decodeJSON decodes a size-limited JSON body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseIntQuery returns the integer query parameter key, or def when it is
// missing or not a number.
func parseIntQuery(r *http.Request, key string, def int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return n
	}
	return def
}

// parseBoolQuery parses a boolean query parameter; anything unparsable is false.
func parseBoolQuery(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && b
}

// parseLanguage reads the lang query parameter. Missing means English.
func parseLanguage(r *http.Request) (domain.Language, error) {
	lang, err := domain.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		return "", fmt.Errorf("lang: %w", err)
	}
	return lang, nil
}
