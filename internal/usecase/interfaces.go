package usecase

import (
	"context"
	"time"

	"github.com/iho/gocalc/internal/domain"
)

// HistoryRepository defines storage for the bounded calculation history.
// Implementations keep entries newest first and retain at most
// domain.MaxHistoryEntries of them.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	List(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// PreferencesRepository defines storage for per-client preferences.
type PreferencesRepository interface {
	// Get returns domain.ErrPreferencesNotFound when nothing is stored.
	Get(ctx context.Context, clientID string) (*domain.Preferences, error)
	Save(ctx context.Context, prefs *domain.Preferences) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// HistoryRecorder appends a calculation summary to the history.
type HistoryRecorder interface {
	Record(ctx context.Context, input RecordInput) (*domain.HistoryEntry, error)
}

// ScheduleBuilder builds amortization schedules.
type ScheduleBuilder interface {
	BuildSchedule(ctx context.Context, input ScheduleInput) (*domain.AmortizationResult, error)
}

// MetricsRecorder receives calculation telemetry.
type MetricsRecorder interface {
	ObserveSchedule(termMonths int, duration time.Duration)
	ObserveCalculation(calculator string, err error)
	ObserveHistoryAppend(err error)
	ObserveCache(hit bool)
}

// NopMetrics discards all telemetry.
type NopMetrics struct{}

func (NopMetrics) ObserveSchedule(int, time.Duration) {}
func (NopMetrics) ObserveCalculation(string, error)   {}
func (NopMetrics) ObserveHistoryAppend(error)         {}
func (NopMetrics) ObserveCache(bool)                  {}
