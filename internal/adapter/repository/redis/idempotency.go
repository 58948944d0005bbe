package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingMarker is stored while the first request for a key is in flight.
const pendingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: keyPrefix + "idempotency:",
	}
}

// maxClaimAttempts bounds how often CheckAndSet re-claims a key that expired
// between SETNX and GET.
const maxClaimAttempts = 3

// ErrClaimContended is returned when a key keeps expiring under CheckAndSet.
var ErrClaimContended = errors.New("idempotency key contended")

// CheckAndSet claims key. A fresh claim stores response (or the pending
// marker when response is nil) and reports seen=false. Otherwise it returns
// whatever the earlier claim left behind.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (seen bool, cached []byte, err error) {
	k := s.key(key)
	if response == nil {
		response = []byte(pendingMarker)
	}

	for i := 0; i < maxClaimAttempts; i++ {
		claimed, err := s.client.SetNX(ctx, k, response, ttl).Result()
		switch {
		case err != nil:
			return false, nil, fmt.Errorf("claim idempotency key: %w", err)
		case claimed:
			return false, nil, nil
		}

		cached, err = s.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET, claim again
			continue
		}
		if err != nil {
			return false, nil, fmt.Errorf("read idempotency key: %w", err)
		}
		return true, cached, nil
	}
	return false, nil, fmt.Errorf("%w: %s", ErrClaimContended, key)
}

// Update replaces the pending marker with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), response, ttl).Err()
}

// Release deletes the key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *IdempotencyStore) key(k string) string {
	return s.prefix + k
}
