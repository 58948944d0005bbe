package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrAdminShutdown        = "57P01"
)

// RetryConfig tunes the exponential backoff of a Retrier.
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig is used by NewRetrier.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:      3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// Retrier implements usecase.Retrier. Only transient PostgreSQL failures are
// retried; any other error is returned after the first attempt.
type Retrier struct {
	cfg RetryConfig
}

// NewRetrier creates a Retrier with DefaultRetryConfig.
func NewRetrier() *Retrier {
	return NewRetrierWithConfig(DefaultRetryConfig)
}

// NewRetrierWithConfig creates a Retrier with cfg.
func NewRetrierWithConfig(cfg RetryConfig) *Retrier {
	return &Retrier{cfg: cfg}
}

// Retry runs operation until it succeeds, fails permanently or the retry
// budget is spent.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = r.cfg.MaxElapsedTime

	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.cfg.MaxRetries), ctx)

	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			err := operation()
			if err != nil && !isRetryableError(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		policy,
		func(err error, wait time.Duration) {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("backoff", wait).
				Msg("transient history store error, retrying")
		},
	)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure, pgErrAdminShutdown:
			return true
		}
		return false
	}
	return pgconn.SafeToRetry(err)
}
