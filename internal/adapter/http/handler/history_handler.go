package handler

import (
	"context"
	"net/http"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	Record(ctx context.Context, input usecase.RecordInput) (*domain.HistoryEntry, error)
	ListHistory(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

// HistoryHandler handles the calculation history.
type HistoryHandler struct {
	historyUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// List returns the most recent entries, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.historyUC.ListHistory(r.Context(), parseIntQuery(r, "limit", usecase.DefaultHistoryLimit))
	if err != nil {
		writeDomainError(w, "failed to list history", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(entries))
}

// Create appends an entry.
func (h *HistoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordHistoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.historyUC.Record(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to record history", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.HistoryEntryFromDomain(entry))
}

// Clear removes every entry.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.historyUC.ClearHistory(r.Context()); err != nil {
		writeDomainError(w, "failed to clear history", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
