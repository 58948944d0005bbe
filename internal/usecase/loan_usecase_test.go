package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
	"github.com/iho/gocalc/internal/usecase/mocks"
)

var errCacheMiss = errors.New("cache miss")

func standardTerms() domain.LoanTerms {
	return domain.LoanTerms{
		Principal:         decimal.NewFromInt(1000000),
		AnnualRatePercent: decimal.NewFromInt(12),
		TermMonths:        60,
	}
}

func TestLoanUseCase_PeriodicPayment(t *testing.T) {
	uc := usecase.NewLoanUseCase(nil, nil, nil)

	payment, err := uc.PeriodicPayment(context.Background(), standardTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.String() != "22244.45" {
		t.Errorf("expected payment 22244.45, got %s", payment)
	}

	_, err = uc.PeriodicPayment(context.Background(), domain.LoanTerms{Principal: decimal.NewFromInt(-1), TermMonths: 12})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoanUseCase_BuildSchedule_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "schedule:1000000:12:60").Return(nil, errCacheMiss)
	cache.EXPECT().Set(gomock.Any(), "schedule:1000000:12:60", gomock.Any(), usecase.ScheduleCacheTTL).Return(nil)

	uc := usecase.NewLoanUseCase(cache, nil, nil)

	result, err := uc.BuildSchedule(context.Background(), usecase.ScheduleInput{Terms: standardTerms()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schedule) != 60 {
		t.Errorf("expected 60 periods, got %d", len(result.Schedule))
	}
	if !result.Schedule[59].RemainingBalance.IsZero() {
		t.Errorf("expected final balance 0, got %s", result.Schedule[59].RemainingBalance)
	}
}

func TestLoanUseCase_BuildSchedule_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expected, err := domain.BuildSchedule(standardTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(data, nil)

	metrics := mocks.NewMockMetricsRecorder(ctrl)
	metrics.EXPECT().ObserveCache(true)

	uc := usecase.NewLoanUseCase(cache, nil, metrics)

	result, err := uc.BuildSchedule(context.Background(), usecase.ScheduleInput{Terms: standardTerms()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.TotalInterest.Equal(expected.TotalInterest) {
		t.Errorf("expected total interest %s, got %s", expected.TotalInterest, result.TotalInterest)
	}
	if len(result.Schedule) != len(expected.Schedule) {
		t.Errorf("expected %d periods, got %d", len(expected.Schedule), len(result.Schedule))
	}
}

func TestLoanUseCase_BuildSchedule_CorruptCacheEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{not json"), nil)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewLoanUseCase(cache, nil, nil)

	result, err := uc.BuildSchedule(context.Background(), usecase.ScheduleInput{Terms: standardTerms()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PeriodicPayment.String() != "22244.45" {
		t.Errorf("expected payment 22244.45, got %s", result.PeriodicPayment)
	}
}

func TestLoanUseCase_BuildSchedule_Records(t *testing.T) {
	tests := []struct {
		name      string
		recordErr error
	}{
		{name: "recorded"},
		{name: "history failure does not fail calculation", recordErr: domain.ErrHistoryUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var recorded usecase.RecordInput
			history := mocks.NewMockHistoryRecorder(ctrl)
			history.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, in usecase.RecordInput) (*domain.HistoryEntry, error) {
					recorded = in
					if tt.recordErr != nil {
						return nil, tt.recordErr
					}
					return &domain.HistoryEntry{ID: "h1", CalculatorName: in.CalculatorName, Result: in.Result, Timestamp: time.Now()}, nil
				})

			uc := usecase.NewLoanUseCase(nil, history, nil)

			_, err := uc.BuildSchedule(context.Background(), usecase.ScheduleInput{
				Terms:    standardTerms(),
				Language: domain.LanguageEN,
				Record:   true,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if recorded.CalculatorName != domain.CalculatorLoanEMI {
				t.Errorf("expected calculator %q, got %q", domain.CalculatorLoanEMI, recorded.CalculatorName)
			}
			if !strings.Contains(recorded.Result, "Rs 22,244") {
				t.Errorf("expected summary to contain the payment, got %q", recorded.Result)
			}
		})
	}
}

func TestLoanUseCase_BuildSchedule_InvalidTermsNotRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: any call fails the test.
	history := mocks.NewMockHistoryRecorder(ctrl)

	uc := usecase.NewLoanUseCase(nil, history, nil)

	result, err := uc.BuildSchedule(context.Background(), usecase.ScheduleInput{
		Terms:  domain.LoanTerms{Principal: decimal.NewFromInt(1000), TermMonths: 0},
		Record: true,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if result != nil {
		t.Error("expected no result on error")
	}
}

func TestLoanUseCase_BuildSchedule_OversizedTermsSkipCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: a cache lookup for rejected terms fails the test.
	cache := mocks.NewMockCache(ctrl)
	uc := usecase.NewLoanUseCase(cache, nil, nil)

	start := time.Now()
	_, err := uc.BuildSchedule(context.Background(), usecase.ScheduleInput{
		Terms: domain.LoanTerms{
			Principal:         decimal.RequireFromString("1e20000000"),
			AnnualRatePercent: decimal.NewFromInt(12),
			TermMonths:        60,
		},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("rejecting oversized principal took %s", elapsed)
	}
}

func TestScheduleSummary(t *testing.T) {
	result, err := domain.BuildSchedule(standardTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := usecase.ScheduleSummary(result, domain.LanguageEN)
	want := "EMI Rs 22,244 × 60, interest Rs 334,667, total Rs 1,334,667"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
