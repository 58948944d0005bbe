package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/gocalc/internal/usecase"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key of a mutating request.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	pendingResponse = "processing"
)

// storedResponse is what gets written to the store once a request succeeds.
type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyMiddleware makes POST and PUT requests carrying an
// Idempotency-Key safe to retry: the first 2xx response is stored and
// replayed for later requests with the same key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates an IdempotencyMiddleware. ttl <= 0 selects
// usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
			next.ServeHTTP(w, r)
			return
		}

		seen, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			requestLogger(r).Error().Err(err).Str("idempotency_key", key).Msg("idempotency store unavailable")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}
		if seen {
			replay(w, cached)
			return
		}

		var body bytes.Buffer
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(&body)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.settle(r, key, status, body.Bytes())
	})
}

// settle stores a successful response under key or frees the key so the
// client can retry.
func (m *IdempotencyMiddleware) settle(r *http.Request, key string, status int, body []byte) {
	logger := requestLogger(r)

	if status < 200 || status >= 300 {
		if err := m.store.Release(r.Context(), key); err != nil {
			logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
		}
		return
	}

	if !json.Valid(body) {
		body, _ = json.Marshal(string(body))
	}
	payload, err := json.Marshal(storedResponse{Status: status, Body: body})
	if err == nil {
		err = m.store.Update(r.Context(), key, payload, m.ttl)
	}
	if err != nil {
		logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotent response")
	}
}

func replay(w http.ResponseWriter, cached []byte) {
	var stored storedResponse
	if len(cached) == 0 || string(cached) == pendingResponse || json.Unmarshal(cached, &stored) != nil {
		writeJSONError(w, http.StatusConflict, "request with this idempotency key is in progress")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
