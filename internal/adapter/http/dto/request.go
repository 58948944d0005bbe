package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

// LoanTermsRequest represents loan terms in API requests.
type LoanTermsRequest struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
}

// ToDomain converts the request to loan terms.
func (r *LoanTermsRequest) ToDomain() domain.LoanTerms {
	return domain.LoanTerms{
		Principal:         r.Principal,
		AnnualRatePercent: r.AnnualRatePercent,
		TermMonths:        r.TermMonths,
	}
}

// RecordHistoryRequest represents a request to append a history entry.
type RecordHistoryRequest struct {
	CalculatorName string `json:"calculator_name"`
	Result         string `json:"result"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordHistoryRequest) ToUseCaseInput() usecase.RecordInput {
	return usecase.RecordInput{
		CalculatorName: r.CalculatorName,
		Result:         r.Result,
	}
}

// UpdatePreferencesRequest represents a request to change preferences.
type UpdatePreferencesRequest struct {
	Language string `json:"language,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePreferencesRequest) ToUseCaseInput(clientID string) usecase.UpdatePreferencesInput {
	return usecase.UpdatePreferencesInput{
		ClientID: clientID,
		Language: r.Language,
		Theme:    r.Theme,
	}
}

// EvaluateRequest wraps a raw calculator payload.
type EvaluateRequest struct {
	Payload json.RawMessage
}

// ToUseCaseInput converts to use case input.
func (r *EvaluateRequest) ToUseCaseInput(name string, lang domain.Language, record bool) usecase.EvaluateInput {
	return usecase.EvaluateInput{
		Name:     name,
		Payload:  r.Payload,
		Language: lang,
		Record:   record,
	}
}
