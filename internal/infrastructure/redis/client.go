package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultClientName is reported to the server via CLIENT SETNAME when the
// URL does not set one.
const DefaultClientName = "gocalc"

// Options controls how NewClientWithOptions connects.
type Options struct {
	URL         string
	ClientName  string
	PingTimeout time.Duration
}

// NewClient connects to redisURL and checks the server answers PING.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	return NewClientWithOptions(ctx, Options{URL: redisURL})
}

// NewClientWithOptions connects using o. Zero fields fall back to
// DefaultClientName and a three second ping timeout.
func NewClientWithOptions(ctx context.Context, o Options) (*redis.Client, error) {
	parsed, err := redis.ParseURL(o.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	switch {
	case o.ClientName != "":
		parsed.ClientName = o.ClientName
	case parsed.ClientName == "":
		parsed.ClientName = DefaultClientName
	}

	timeout := o.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	client := redis.NewClient(parsed)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", parsed.Addr, err)
	}
	return client, nil
}
