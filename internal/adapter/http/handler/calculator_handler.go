package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

// CalculatorService defines the behavior needed by CalculatorHandler.
type CalculatorService interface {
	ListCalculators(lang domain.Language) []usecase.CalculatorInfo
	Evaluate(ctx context.Context, input usecase.EvaluateInput) (*usecase.EvaluateOutput, error)
}

// CalculatorHandler handles the calculator catalog.
type CalculatorHandler struct {
	calculatorUC CalculatorService
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(calculatorUC CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculatorUC: calculatorUC}
}

// List lists available calculators.
func (h *CalculatorHandler) List(w http.ResponseWriter, r *http.Request) {
	lang, err := parseLanguage(r)
	if err != nil {
		writeDomainError(w, "invalid language", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CalculatorsFromUseCase(h.calculatorUC.ListCalculators(lang)))
}

// Evaluate runs the calculator named in the path on the posted JSON input.
func (h *CalculatorHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing calculator name", "")
		return
	}

	lang, err := parseLanguage(r)
	if err != nil {
		writeDomainError(w, "invalid language", err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	req := dto.EvaluateRequest{Payload: body}
	out, err := h.calculatorUC.Evaluate(r.Context(), req.ToUseCaseInput(name, lang, parseBoolQuery(r, "record")))
	if err != nil {
		writeDomainError(w, "failed to evaluate calculator", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EvaluationFromUseCase(out))
}
