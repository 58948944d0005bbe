package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

type loanServiceStub struct {
	paymentFn  func(ctx context.Context, terms domain.LoanTerms) (decimal.Decimal, error)
	scheduleFn func(ctx context.Context, input usecase.ScheduleInput) (*domain.AmortizationResult, error)
}

func (s *loanServiceStub) PeriodicPayment(ctx context.Context, terms domain.LoanTerms) (decimal.Decimal, error) {
	if s.paymentFn != nil {
		return s.paymentFn(ctx, terms)
	}
	return domain.ComputePeriodicPayment(terms)
}

func (s *loanServiceStub) BuildSchedule(ctx context.Context, input usecase.ScheduleInput) (*domain.AmortizationResult, error) {
	if s.scheduleFn != nil {
		return s.scheduleFn(ctx, input)
	}
	return domain.BuildSchedule(input.Terms)
}

const standardLoanBody = `{"principal":"1000000","annual_rate_percent":"12","term_months":60}`

func TestLoanHandler_Payment(t *testing.T) {
	h := NewLoanHandler(&loanServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/payment", strings.NewReader(standardLoanBody))
	rec := httptest.NewRecorder()

	h.Payment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.PeriodicPayment.String() != "22244.45" {
		t.Fatalf("expected payment 22244.45, got %s", resp.PeriodicPayment)
	}
	if resp.Formatted != "Rs 22,244" {
		t.Fatalf("expected formatted payment, got %q", resp.Formatted)
	}
}

func TestLoanHandler_PaymentErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "malformed JSON", target: "/api/v1/loans/payment", body: `{"principal":`, status: http.StatusBadRequest},
		{name: "unknown field", target: "/api/v1/loans/payment", body: `{"principal":"1","term_months":1,"x":1}`, status: http.StatusBadRequest},
		{name: "zero term", target: "/api/v1/loans/payment", body: `{"principal":"1000","annual_rate_percent":"5","term_months":0}`, status: http.StatusBadRequest},
		{name: "negative principal", target: "/api/v1/loans/payment", body: `{"principal":"-1","annual_rate_percent":"5","term_months":12}`, status: http.StatusBadRequest},
		{name: "oversized principal", target: "/api/v1/loans/payment", body: `{"principal":"1e20000000","annual_rate_percent":"12","term_months":60}`, status: http.StatusBadRequest},
		{name: "bad language", target: "/api/v1/loans/payment?lang=fr", body: standardLoanBody, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLoanHandler(&loanServiceStub{})

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Payment(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLoanHandler_Schedule(t *testing.T) {
	var captured usecase.ScheduleInput
	h := NewLoanHandler(&loanServiceStub{
		scheduleFn: func(ctx context.Context, input usecase.ScheduleInput) (*domain.AmortizationResult, error) {
			captured = input
			return domain.BuildSchedule(input.Terms)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/schedule?window=12&lang=ur&record=true", strings.NewReader(standardLoanBody))
	rec := httptest.NewRecorder()

	h.Schedule(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if !captured.Record || captured.Language != domain.LanguageUR {
		t.Fatalf("expected record=true lang=ur, got %+v", captured)
	}

	var resp dto.ScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Periods != 60 || len(resp.Schedule) != 12 {
		t.Fatalf("expected 60 periods with 12 rows shown, got %d/%d", resp.Periods, len(resp.Schedule))
	}
	if !resp.Schedule[0].Interest.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected first interest 10000, got %s", resp.Schedule[0].Interest)
	}
	if resp.Language != "ur" {
		t.Fatalf("expected language ur, got %q", resp.Language)
	}
}
