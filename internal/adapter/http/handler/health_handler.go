package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 3 * time.Second

type dependencyCheck struct {
	name string
	ping func(context.Context) error
}

// HealthHandler serves liveness and readiness checks. Only the stores the
// configured backends use are checked.
type HealthHandler struct {
	checks []dependencyCheck
}

// NewHealthHandler creates a HealthHandler. pool and redisClient may be nil.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	h := &HealthHandler{}
	if pool != nil {
		h.checks = append(h.checks, dependencyCheck{name: "postgres", ping: pool.Ping})
	}
	if redisClient != nil {
		h.checks = append(h.checks, dependencyCheck{
			name: "redis",
			ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return h
}

// Liveness always reports ok while the process serves requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness pings every dependency and reports each result. Any failure
// turns the response into a 503.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	code, overall := http.StatusOK, "ready"
	for _, c := range h.checks {
		if err := c.ping(ctx); err != nil {
			results[c.name] = err.Error()
			code, overall = http.StatusServiceUnavailable, "unavailable"
			continue
		}
		results[c.name] = "ok"
	}

	writeJSON(w, code, map[string]any{"status": overall, "checks": results})
}
