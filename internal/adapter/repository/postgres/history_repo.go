package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

const (
	insertHistorySQL = `INSERT INTO calculation_history (id, calculator_name, result, created_at)
VALUES ($1, $2, $3, $4)`

	trimHistorySQL = `DELETE FROM calculation_history
WHERE id NOT IN (
    SELECT id FROM calculation_history ORDER BY created_at DESC, id DESC LIMIT $1
)`

	listHistorySQL = `SELECT id, calculator_name, result, created_at
FROM calculation_history
ORDER BY created_at DESC, id DESC
LIMIT $1`

	clearHistorySQL = `DELETE FROM calculation_history`
)

// HistoryRepository implements usecase.HistoryRepository on PostgreSQL.
// Each append inserts the entry and deletes everything beyond
// domain.MaxHistoryEntries in one transaction.
type HistoryRepository struct {
	pool    pgxPool
	tx      *TxManager
	retrier usecase.Retrier
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool, retrier usecase.Retrier) *HistoryRepository {
	return newHistoryRepository(pool, retrier)
}

func newHistoryRepository(pool pgxPool, retrier usecase.Retrier) *HistoryRepository {
	if retrier == nil {
		retrier = NewRetrier()
	}
	return &HistoryRepository{
		pool:    pool,
		tx:      newTxManager(pool, pgx.TxOptions{IsoLevel: pgx.Serializable}),
		retrier: retrier,
	}
}

// Append stores entry as the newest history item.
func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	err := r.retrier.Retry(ctx, func() error {
		return r.tx.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, insertHistorySQL,
				entry.ID, entry.CalculatorName, entry.Result, entry.Timestamp,
			); err != nil {
				return err
			}

			_, err := tx.Exec(ctx, trimHistorySQL, domain.MaxHistoryEntries)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	if limit <= 0 || limit > domain.MaxHistoryEntries {
		limit = domain.MaxHistoryEntries
	}

	rows, err := r.pool.Query(ctx, listHistorySQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.CalculatorName, &e.Result, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}

	return entries, nil
}

// Clear removes all history entries.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, clearHistorySQL); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}
	return nil
}
