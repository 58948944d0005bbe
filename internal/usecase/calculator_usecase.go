package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gocalc/internal/domain"
)

// CalculatorUseCase lists the calculator catalog and evaluates one-shot
// calculators by name.
type CalculatorUseCase struct {
	loans   ScheduleBuilder
	history HistoryRecorder
	metrics MetricsRecorder
}

// NewCalculatorUseCase creates a new CalculatorUseCase. history may be nil.
func NewCalculatorUseCase(loans ScheduleBuilder, history HistoryRecorder, metrics MetricsRecorder) *CalculatorUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &CalculatorUseCase{
		loans:   loans,
		history: history,
		metrics: metrics,
	}
}

// CalculatorInfo describes a catalog entry in one language.
type CalculatorInfo struct {
	Name     string
	Category string
	Title    string
	Formula  string
}

// ListCalculators returns the catalog with titles in the requested language.
func (uc *CalculatorUseCase) ListCalculators(lang domain.Language) []CalculatorInfo {
	infos := make([]CalculatorInfo, len(domain.Catalog))
	for i, c := range domain.Catalog {
		infos[i] = CalculatorInfo{
			Name:     c.Name,
			Category: string(c.Category),
			Title:    c.Title.In(lang),
			Formula:  c.Formula,
		}
	}
	return infos
}

// EvaluateInput represents a request to run a calculator.
type EvaluateInput struct {
	Name     string
	Payload  json.RawMessage
	Language domain.Language
	Record   bool
}

// EvaluateOutput is the typed result of a calculator together with a
// one-line summary suitable for the history.
type EvaluateOutput struct {
	Calculator string
	Title      string
	Result     any
	Summary    string
}

// LoanTermsPayload is the JSON form of domain.LoanTerms.
type LoanTermsPayload struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
}

// ToDomain converts the payload to loan terms.
func (p LoanTermsPayload) ToDomain() domain.LoanTerms {
	return domain.LoanTerms{
		Principal:         p.Principal,
		AnnualRatePercent: p.AnnualRatePercent,
		TermMonths:        p.TermMonths,
	}
}

// LoanEMIResult is the result of the loan-emi calculator.
type LoanEMIResult struct {
	PeriodicPayment decimal.Decimal `json:"periodic_payment"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
}

type evaluator func(ctx context.Context, uc *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error)

var evaluators = map[string]evaluator{
	domain.CalculatorLoanEMI:          evalLoanEMI,
	domain.CalculatorSimpleInterest:   evalSimpleInterest,
	domain.CalculatorCompoundInterest: evalCompoundInterest,
	domain.CalculatorProfitLoss:       evalProfitLoss,
	domain.CalculatorROI:              evalROI,
	domain.CalculatorIncomeTax:        evalIncomeTax,
	domain.CalculatorGratuity:         evalGratuity,
	domain.CalculatorKPIScore:         evalKPIScore,
}

// Evaluate runs the named calculator on a JSON payload.
func (uc *CalculatorUseCase) Evaluate(ctx context.Context, input EvaluateInput) (*EvaluateOutput, error) {
	calc, err := domain.FindCalculator(input.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, input.Name)
	}

	eval, ok := evaluators[calc.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCalculatorNotFound, input.Name)
	}

	result, summary, err := eval(ctx, uc, input.Payload, input.Language)
	if calc.Name != domain.CalculatorLoanEMI {
		uc.metrics.ObserveCalculation(calc.Name, err)
	}
	if err != nil {
		return nil, err
	}

	if input.Record {
		recordQuietly(ctx, uc.history, calc.Name, summary)
	}

	return &EvaluateOutput{
		Calculator: calc.Name,
		Title:      calc.Title.In(input.Language),
		Result:     result,
		Summary:    summary,
	}, nil
}

func decodePayload[T any](payload json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(payload)) == 0 {
		return v, fmt.Errorf("%w: missing calculator input", domain.ErrInvalidInput)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return v, nil
}

func evalLoanEMI(ctx context.Context, uc *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[LoanTermsPayload](payload)
	if err != nil {
		return nil, "", err
	}

	result, err := uc.loans.BuildSchedule(ctx, ScheduleInput{Terms: in.ToDomain(), Language: lang})
	if err != nil {
		return nil, "", err
	}

	return LoanEMIResult{
		PeriodicPayment: result.PeriodicPayment,
		TotalInterest:   result.TotalInterest,
		TotalPayment:    result.TotalPayment,
	}, ScheduleSummary(result, lang), nil
}

func evalSimpleInterest(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[domain.SimpleInterestInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.SimpleInterest(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Interest %s, total %s",
		domain.FormatCurrency(out.Interest, lang), domain.FormatCurrency(out.Total, lang)), nil
}

func evalCompoundInterest(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[domain.CompoundInterestInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.CompoundInterest(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Amount %s, interest %s",
		domain.FormatCurrency(out.Amount, lang), domain.FormatCurrency(out.Interest, lang)), nil
}

func evalProfitLoss(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[domain.LedgerInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.ProfitLoss(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Net profit %s (%s%% margin)",
		domain.FormatCurrency(out.NetProfit, lang), out.NetMarginPct.String()), nil
}

func evalROI(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[domain.ROIInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.ROI(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("ROI %s%%, gain %s", out.ROIPercent.String(), domain.FormatCurrency(out.Gain, lang)), nil
}

func evalIncomeTax(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[domain.IncomeTaxInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.IncomeTax(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Tax %s (%s%% effective)",
		domain.FormatCurrency(out.Tax, lang), out.EffectiveRatePercent.String()), nil
}

func evalGratuity(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, lang domain.Language) (any, string, error) {
	in, err := decodePayload[domain.GratuityInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.Gratuity(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Gratuity %s for %d years", domain.FormatCurrency(out.Gratuity, lang), out.EligibleYears), nil
}

func evalKPIScore(_ context.Context, _ *CalculatorUseCase, payload json.RawMessage, _ domain.Language) (any, string, error) {
	in, err := decodePayload[domain.KPIScoreInput](payload)
	if err != nil {
		return nil, "", err
	}
	out, err := domain.KPIScore(in)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("KPI score %s%%", out.ScorePercent.String()), nil
}
