package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	PeriodicPayment(ctx context.Context, terms domain.LoanTerms) (decimal.Decimal, error)
	BuildSchedule(ctx context.Context, input usecase.ScheduleInput) (*domain.AmortizationResult, error)
}

// LoanHandler handles amortization requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Payment returns the periodic payment for the posted loan terms.
func (h *LoanHandler) Payment(w http.ResponseWriter, r *http.Request) {
	lang, err := parseLanguage(r)
	if err != nil {
		writeDomainError(w, "invalid language", err)
		return
	}

	var req dto.LoanTermsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	terms := req.ToDomain()
	payment, err := h.loanUC.PeriodicPayment(r.Context(), terms)
	if err != nil {
		writeDomainError(w, "failed to compute payment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(terms, payment, lang))
}

// Schedule returns the amortization schedule for the posted loan terms.
// Query parameters: window (rows to include, 0 = all), lang, record.
func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	lang, err := parseLanguage(r)
	if err != nil {
		writeDomainError(w, "invalid language", err)
		return
	}

	var req dto.LoanTermsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.loanUC.BuildSchedule(r.Context(), usecase.ScheduleInput{
		Terms:    req.ToDomain(),
		Language: lang,
		Record:   parseBoolQuery(r, "record"),
	})
	if err != nil {
		writeDomainError(w, "failed to build schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(result, parseIntQuery(r, "window", 0), lang))
}
