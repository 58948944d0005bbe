package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/gocalc/internal/domain"
)

// HistoryUseCase handles the bounded calculation history.
type HistoryUseCase struct {
	repo    HistoryRepository
	idGen   IDGenerator
	metrics MetricsRecorder
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(repo HistoryRepository, idGen IDGenerator, metrics MetricsRecorder) *HistoryUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &HistoryUseCase{
		repo:    repo,
		idGen:   idGen,
		metrics: metrics,
	}
}

// RecordInput represents input for recording a calculation.
type RecordInput struct {
	CalculatorName string
	Result         string
}

// Record appends a calculation result to the history.
func (uc *HistoryUseCase) Record(ctx context.Context, input RecordInput) (*domain.HistoryEntry, error) {
	entry := &domain.HistoryEntry{
		ID:             uc.idGen.Generate(),
		CalculatorName: strings.TrimSpace(input.CalculatorName),
		Result:         input.Result,
		Timestamp:      time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	err := uc.repo.Append(ctx, entry)
	uc.metrics.ObserveHistoryAppend(err)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListHistory returns the most recent entries, newest first.
func (uc *HistoryUseCase) ListHistory(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit, _, _ = domain.ValidatePagination(limit, 0)

	return uc.repo.List(ctx, limit)
}

// ClearHistory removes every entry.
func (uc *HistoryUseCase) ClearHistory(ctx context.Context) error {
	return uc.repo.Clear(ctx)
}
