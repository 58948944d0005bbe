package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LoanTermsResponse echoes normalized loan terms.
type LoanTermsResponse struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
}

func termsFromDomain(t domain.LoanTerms) LoanTermsResponse {
	return LoanTermsResponse{
		Principal:         domain.RoundMoney(t.Principal),
		AnnualRatePercent: t.AnnualRatePercent,
		TermMonths:        t.TermMonths,
	}
}

// PaymentResponse represents the periodic payment of a loan.
type PaymentResponse struct {
	Terms           LoanTermsResponse `json:"terms"`
	PeriodicPayment decimal.Decimal   `json:"periodic_payment"`
	Formatted       string            `json:"formatted"`
}

// PaymentFromDomain builds a PaymentResponse.
func PaymentFromDomain(terms domain.LoanTerms, payment decimal.Decimal, lang domain.Language) *PaymentResponse {
	return &PaymentResponse{
		Terms:           termsFromDomain(terms),
		PeriodicPayment: payment,
		Formatted:       domain.FormatCurrency(payment, lang),
	}
}

// PeriodResponse represents one schedule row.
type PeriodResponse struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// YearSummaryResponse represents one loan year.
type YearSummaryResponse struct {
	Year           int             `json:"year"`
	Principal      decimal.Decimal `json:"principal"`
	Interest       decimal.Decimal `json:"interest"`
	Payment        decimal.Decimal `json:"payment"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// ChartResponse holds plotting series.
type ChartResponse struct {
	Periods   []int             `json:"periods"`
	Balance   []decimal.Decimal `json:"balance"`
	Principal []decimal.Decimal `json:"principal"`
	Interest  []decimal.Decimal `json:"interest"`
}

// FormattedTotals holds display strings for the headline figures.
type FormattedTotals struct {
	PeriodicPayment string `json:"periodic_payment"`
	TotalInterest   string `json:"total_interest"`
	TotalPayment    string `json:"total_payment"`
	Principal       string `json:"principal"`
}

// ScheduleResponse represents a full amortization result.
type ScheduleResponse struct {
	Terms           LoanTermsResponse     `json:"terms"`
	Language        string                `json:"language"`
	PeriodicPayment decimal.Decimal       `json:"periodic_payment"`
	TotalInterest   decimal.Decimal       `json:"total_interest"`
	TotalPayment    decimal.Decimal       `json:"total_payment"`
	FinalAdjustment decimal.Decimal       `json:"final_adjustment"`
	Periods         int                   `json:"periods"`
	Truncated       bool                  `json:"truncated"`
	Schedule        []PeriodResponse      `json:"schedule"`
	YearlySummary   []YearSummaryResponse `json:"yearly_summary"`
	Chart           ChartResponse         `json:"chart"`
	Formatted       FormattedTotals       `json:"formatted"`
}

// ScheduleFromDomain builds a ScheduleResponse showing the first window rows.
func ScheduleFromDomain(r *domain.AmortizationResult, window int, lang domain.Language) *ScheduleResponse {
	rows := r.Window(window)
	schedule := make([]PeriodResponse, len(rows))
	for i, row := range rows {
		schedule[i] = PeriodResponse{
			Period:           row.Period,
			Payment:          row.Payment,
			Principal:        row.Principal,
			Interest:         row.Interest,
			RemainingBalance: row.RemainingBalance,
		}
	}

	years := r.YearlySummary()
	yearly := make([]YearSummaryResponse, len(years))
	for i, y := range years {
		yearly[i] = YearSummaryResponse{
			Year:           y.Year,
			Principal:      y.Principal,
			Interest:       y.Interest,
			Payment:        y.Payment,
			ClosingBalance: y.ClosingBalance,
		}
	}

	chart := r.Chart()

	return &ScheduleResponse{
		Terms:           termsFromDomain(r.Terms),
		Language:        string(lang),
		PeriodicPayment: r.PeriodicPayment,
		TotalInterest:   r.TotalInterest,
		TotalPayment:    r.TotalPayment,
		FinalAdjustment: r.FinalAdjustment,
		Periods:         len(r.Schedule),
		Truncated:       len(rows) < len(r.Schedule),
		Schedule:        schedule,
		YearlySummary:   yearly,
		Chart: ChartResponse{
			Periods:   chart.Periods,
			Balance:   chart.Balance,
			Principal: chart.Principal,
			Interest:  chart.Interest,
		},
		Formatted: FormattedTotals{
			PeriodicPayment: domain.FormatCurrency(r.PeriodicPayment, lang),
			TotalInterest:   domain.FormatCurrency(r.TotalInterest, lang),
			TotalPayment:    domain.FormatCurrency(r.TotalPayment, lang),
			Principal:       domain.FormatCurrency(r.Terms.Principal, lang),
		},
	}
}

// CalculatorResponse represents a catalog entry.
type CalculatorResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Formula  string `json:"formula"`
}

// CalculatorsFromUseCase converts catalog entries to responses.
func CalculatorsFromUseCase(infos []usecase.CalculatorInfo) []CalculatorResponse {
	result := make([]CalculatorResponse, len(infos))
	for i, c := range infos {
		result[i] = CalculatorResponse{
			Name:     c.Name,
			Category: c.Category,
			Title:    c.Title,
			Formula:  c.Formula,
		}
	}
	return result
}

// EvaluationResponse represents a calculator result.
type EvaluationResponse struct {
	Calculator string `json:"calculator"`
	Title      string `json:"title"`
	Result     any    `json:"result"`
	Summary    string `json:"summary"`
}

// EvaluationFromUseCase converts an evaluation output to a response.
func EvaluationFromUseCase(out *usecase.EvaluateOutput) *EvaluationResponse {
	return &EvaluationResponse{
		Calculator: out.Calculator,
		Title:      out.Title,
		Result:     out.Result,
		Summary:    out.Summary,
	}
}

// HistoryEntryResponse represents a history entry in API responses.
type HistoryEntryResponse struct {
	ID             string    `json:"id"`
	CalculatorName string    `json:"calculator_name"`
	Result         string    `json:"result"`
	Timestamp      time.Time `json:"timestamp"`
}

// HistoryEntryFromDomain converts a domain history entry to a response.
func HistoryEntryFromDomain(e *domain.HistoryEntry) *HistoryEntryResponse {
	return &HistoryEntryResponse{
		ID:             e.ID,
		CalculatorName: e.CalculatorName,
		Result:         e.Result,
		Timestamp:      e.Timestamp,
	}
}

// HistoryResponse represents a page of history entries.
type HistoryResponse struct {
	Entries []*HistoryEntryResponse `json:"entries"`
	Count   int                     `json:"count"`
}

// HistoryFromDomain converts domain history entries to a response.
func HistoryFromDomain(entries []*domain.HistoryEntry) *HistoryResponse {
	result := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = HistoryEntryFromDomain(e)
	}
	return &HistoryResponse{Entries: result, Count: len(result)}
}

// PreferencesResponse represents client preferences.
type PreferencesResponse struct {
	ClientID  string     `json:"client_id"`
	Language  string     `json:"language"`
	Theme     string     `json:"theme"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PreferencesFromDomain converts domain preferences to a response.
func PreferencesFromDomain(p *domain.Preferences) *PreferencesResponse {
	resp := &PreferencesResponse{
		ClientID: p.ClientID,
		Language: string(p.Language),
		Theme:    string(p.Theme),
	}
	if !p.UpdatedAt.IsZero() {
		ts := p.UpdatedAt
		resp.UpdatedAt = &ts
	}
	return resp
}
