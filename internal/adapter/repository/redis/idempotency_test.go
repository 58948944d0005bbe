package redis

import (
	"context"
	"net"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commandHook runs fn ahead of every command named name. SetNX with a TTL is
// sent as SET ... NX, so it is matched as "set".
type commandHook struct {
	name string
	fn   func()
}

func (h commandHook) DialHook(next redislib.DialHook) redislib.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h commandHook) ProcessHook(next redislib.ProcessHook) redislib.ProcessHook {
	return func(ctx context.Context, cmd redislib.Cmder) error {
		if cmd.Name() == h.name {
			h.fn()
		}
		return next(ctx, cmd)
	}
}

func (h commandHook) ProcessPipelineHook(next redislib.ProcessPipelineHook) redislib.ProcessPipelineHook {
	return next
}

func TestIdempotencyStoreLifecycle(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()
	key := keyPrefix + "idempotency:hist-1"

	// first claim wins and leaves the pending marker behind
	seen, cached, err := store.CheckAndSet(ctx, "hist-1", nil, time.Minute)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Nil(t, cached)

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, pendingMarker, got)
	assert.Equal(t, time.Minute, mr.TTL(key))

	// concurrent retry sees the marker
	seen, cached, err = store.CheckAndSet(ctx, "hist-1", nil, time.Minute)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, pendingMarker, string(cached))

	// completed response replaces the marker
	require.NoError(t, store.Update(ctx, "hist-1", []byte(`{"id":"01J"}`), 2*time.Minute))
	seen, cached, err = store.CheckAndSet(ctx, "hist-1", nil, time.Minute)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.JSONEq(t, `{"id":"01J"}`, string(cached))
	assert.Equal(t, 2*time.Minute, mr.TTL(key))
}

func TestIdempotencyStoreReleaseFreesKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	_, _, err := store.CheckAndSet(ctx, "failed", nil, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "failed"))
	assert.False(t, mr.Exists(keyPrefix+"idempotency:failed"))

	seen, _, err := store.CheckAndSet(ctx, "failed", nil, time.Minute)
	require.NoError(t, err)
	assert.False(t, seen, "released key must be claimable again")
}

func TestIdempotencyStoreExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	_, _, err := store.CheckAndSet(ctx, "short", nil, time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	seen, _, err := store.CheckAndSet(ctx, "short", nil, time.Second)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestIdempotencyStoreUnavailable(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	mr.Close()

	_, _, err := store.CheckAndSet(context.Background(), "k", nil, time.Minute)
	assert.Error(t, err)
}

func TestIdempotencyStoreReclaimsKeyExpiredBeforeRead(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()
	key := keyPrefix + "idempotency:racy"

	_, _, err := store.CheckAndSet(ctx, "racy", nil, time.Minute)
	require.NoError(t, err)

	expired := false
	client.AddHook(commandHook{name: "get", fn: func() {
		if !expired {
			expired = true
			mr.Del(key)
		}
	}})

	seen, cached, err := store.CheckAndSet(ctx, "racy", []byte(`{"id":"02K"}`), time.Minute)
	require.NoError(t, err)
	assert.True(t, expired, "GET should have run after the failed claim")
	assert.False(t, seen, "an expired key must be claimed again, not reported as seen")
	assert.Nil(t, cached)

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"02K"}`, got)
}

func TestIdempotencyStoreGivesUpWhenKeyKeepsExpiring(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()
	key := keyPrefix + "idempotency:flapping"

	require.NoError(t, mr.Set(key, pendingMarker))

	// every GET finds the key gone, and every SETNX finds it back
	gets := 0
	client.AddHook(commandHook{name: "get", fn: func() {
		gets++
		mr.Del(key)
	}})
	client.AddHook(commandHook{name: "set", fn: func() { _ = mr.Set(key, pendingMarker) }})

	_, _, err := store.CheckAndSet(ctx, "flapping", nil, time.Minute)
	require.ErrorIs(t, err, ErrClaimContended)
	assert.Equal(t, maxClaimAttempts, gets)
}
