package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocalc/internal/adapter/http/dto"
	"github.com/iho/gocalc/internal/usecase"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newCalculatorHandler() *CalculatorHandler {
	return NewCalculatorHandler(usecase.NewCalculatorUseCase(usecase.NewLoanUseCase(nil, nil, nil), nil, nil))
}

func TestCalculatorHandler_List(t *testing.T) {
	h := newCalculatorHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calculators?lang=ur", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.CalculatorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) == 0 || resp[0].Name != "loan-emi" {
		t.Fatalf("expected catalog starting with loan-emi, got %+v", resp)
	}
}

func TestCalculatorHandler_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		calc   string
		body   string
		status int
	}{
		{name: "roi", calc: "roi", body: `{"total_cost":"1000","final_value":"1250"}`, status: http.StatusOK},
		{name: "income tax with default brackets", calc: "income-tax", body: `{"annual_income":"1500000"}`, status: http.StatusOK},
		{name: "unknown calculator", calc: "horoscope", body: `{}`, status: http.StatusNotFound},
		{name: "invalid input", calc: "roi", body: `{"total_cost":"-5","final_value":"1"}`, status: http.StatusBadRequest},
		{name: "empty body", calc: "roi", body: ``, status: http.StatusBadRequest},
		{name: "oversized principal", calc: "simple-interest", body: `{"principal":"1e20000000","annual_rate_percent":"12","years":"1"}`, status: http.StatusBadRequest},
		{name: "principal beyond cap", calc: "simple-interest", body: `{"principal":1e19,"annual_rate_percent":"12","years":"1"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newCalculatorHandler()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/calculators/"+tt.calc, strings.NewReader(tt.body))
			req = withURLParam(req, "name", tt.calc)
			rec := httptest.NewRecorder()

			h.Evaluate(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCalculatorHandler_EvaluateResponseShape(t *testing.T) {
	h := newCalculatorHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculators/income-tax", strings.NewReader(`{"annual_income":"1500000"}`))
	req = withURLParam(req, "name", "income-tax")
	rec := httptest.NewRecorder()

	h.Evaluate(rec, req)

	var resp struct {
		Calculator string            `json:"calculator"`
		Summary    string            `json:"summary"`
		Result     map[string]string `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Calculator != "income-tax" {
		t.Fatalf("expected income-tax, got %q", resp.Calculator)
	}
	if resp.Result["tax"] != "75000" {
		t.Fatalf("expected tax 75000, got %q", resp.Result["tax"])
	}
}
