package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gocalc/internal/domain"
)

// LoanUseCase runs the amortization engine with optional result caching and
// history recording.
type LoanUseCase struct {
	cache    Cache
	history  HistoryRecorder
	metrics  MetricsRecorder
	cacheTTL time.Duration
}

// NewLoanUseCase creates a new LoanUseCase. cache and history may be nil.
func NewLoanUseCase(cache Cache, history HistoryRecorder, metrics MetricsRecorder) *LoanUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &LoanUseCase{
		cache:    cache,
		history:  history,
		metrics:  metrics,
		cacheTTL: ScheduleCacheTTL,
	}
}

// SetCacheTTL overrides how long built schedules stay cached.
func (uc *LoanUseCase) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
}

// ScheduleInput represents input for building an amortization schedule.
type ScheduleInput struct {
	Terms    domain.LoanTerms
	Language domain.Language
	Record   bool
}

// PeriodicPayment returns the fixed monthly installment.
func (uc *LoanUseCase) PeriodicPayment(ctx context.Context, terms domain.LoanTerms) (decimal.Decimal, error) {
	payment, err := domain.ComputePeriodicPayment(terms)
	uc.metrics.ObserveCalculation(domain.CalculatorLoanEMI, err)
	return payment, err
}

// BuildSchedule returns the full amortization schedule.
func (uc *LoanUseCase) BuildSchedule(ctx context.Context, input ScheduleInput) (*domain.AmortizationResult, error) {
	if err := input.Terms.Validate(); err != nil {
		uc.metrics.ObserveCalculation(domain.CalculatorLoanEMI, err)
		return nil, err
	}
	key := scheduleCacheKey(input.Terms)

	result := uc.cached(ctx, key)
	if result == nil {
		start := time.Now()

		var err error
		result, err = domain.BuildSchedule(input.Terms)
		uc.metrics.ObserveCalculation(domain.CalculatorLoanEMI, err)
		if err != nil {
			return nil, err
		}

		uc.metrics.ObserveSchedule(result.Terms.TermMonths, time.Since(start))
		uc.store(ctx, key, result)
	}

	if input.Record {
		recordQuietly(ctx, uc.history, domain.CalculatorLoanEMI, ScheduleSummary(result, input.Language))
	}

	return result, nil
}

// ScheduleSummary renders the one-line history text for a schedule.
func ScheduleSummary(result *domain.AmortizationResult, lang domain.Language) string {
	return fmt.Sprintf("EMI %s × %d, interest %s, total %s",
		domain.FormatCurrency(result.PeriodicPayment, lang),
		result.Terms.TermMonths,
		domain.FormatCurrency(result.TotalInterest, lang),
		domain.FormatCurrency(result.TotalPayment, lang),
	)
}

func (uc *LoanUseCase) cached(ctx context.Context, key string) *domain.AmortizationResult {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		uc.metrics.ObserveCache(false)
		return nil
	}

	var result domain.AmortizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable cached schedule")
		_ = uc.cache.Delete(ctx, key)
		uc.metrics.ObserveCache(false)
		return nil
	}

	uc.metrics.ObserveCache(true)
	return &result
}

func (uc *LoanUseCase) store(ctx context.Context, key string, result *domain.AmortizationResult) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache schedule")
	}
}

func scheduleCacheKey(terms domain.LoanTerms) string {
	return fmt.Sprintf("schedule:%s:%s:%d",
		domain.RoundMoney(terms.Principal).String(),
		terms.AnnualRatePercent.String(),
		terms.TermMonths,
	)
}

// recordQuietly appends to the history. Failures are logged and never fail the
// calculation that produced the result.
func recordQuietly(ctx context.Context, recorder HistoryRecorder, calculator, result string) {
	if recorder == nil {
		return
	}

	if _, err := recorder.Record(ctx, RecordInput{CalculatorName: calculator, Result: result}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("calculator", calculator).Msg("failed to record calculation history")
	}
}
