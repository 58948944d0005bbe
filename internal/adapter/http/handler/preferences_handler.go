package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

// PreferencesService defines the behavior needed by PreferencesHandler.
type PreferencesService interface {
	GetPreferences(ctx context.Context, clientID string) (*domain.Preferences, error)
	UpdatePreferences(ctx context.Context, input usecase.UpdatePreferencesInput) (*domain.Preferences, error)
}

// PreferencesHandler handles per-client preferences.
type PreferencesHandler struct {
	preferencesUC PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(preferencesUC PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesUC: preferencesUC}
}

// Get returns the preferences of a client.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "client")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client ID", "")
		return
	}

	prefs, err := h.preferencesUC.GetPreferences(r.Context(), clientID)
	if err != nil {
		writeDomainError(w, "failed to get preferences", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PreferencesFromDomain(prefs))
}

// Update changes the preferences of a client.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "client")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client ID", "")
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	prefs, err := h.preferencesUC.UpdatePreferences(r.Context(), req.ToUseCaseInput(clientID))
	if err != nil {
		writeDomainError(w, "failed to update preferences", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PreferencesFromDomain(prefs))
}
