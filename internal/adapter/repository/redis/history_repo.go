package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gocalc/internal/domain"
)

// historyRecord is the JSON form of a history entry stored in the list.
type historyRecord struct {
	ID             string    `json:"id"`
	CalculatorName string    `json:"calculator_name"`
	Result         string    `json:"result"`
	Timestamp      time.Time `json:"timestamp"`
}

// HistoryRepository implements usecase.HistoryRepository on a Redis list.
// New entries are pushed to the head and the list is trimmed to
// domain.MaxHistoryEntries in the same transaction.
type HistoryRepository struct {
	client *redis.Client
	key    string
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(client *redis.Client) *HistoryRepository {
	return &HistoryRepository{
		client: client,
		key:    keyPrefix + "history",
	}
}

// Append stores entry as the newest history item.
func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	data, err := json.Marshal(historyRecord{
		ID:             entry.ID,
		CalculatorName: entry.CalculatorName,
		Result:         entry.Result,
		Timestamp:      entry.Timestamp,
	})
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, data)
		pipe.LTrim(ctx, r.key, 0, domain.MaxHistoryEntries-1)
		return nil
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

	items, err := r.client.LRange(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}

	entries := make([]*domain.HistoryEntry, 0, len(items))
	for _, item := range items {
		var rec historyRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, &domain.HistoryEntry{
			ID:             rec.ID,
			CalculatorName: rec.CalculatorName,
			Result:         rec.Result,
			Timestamp:      rec.Timestamp,
		})
	}

	return entries, nil
}

// Clear removes all history entries.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}
	return nil
}
