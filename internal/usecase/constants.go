package usecase

import "time"

const (
	// ScheduleCacheTTL is how long computed schedules are cached
	ScheduleCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultHistoryLimit is used when a caller does not ask for a page size
	DefaultHistoryLimit = 20
)
