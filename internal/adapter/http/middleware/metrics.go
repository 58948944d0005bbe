package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gocalc_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gocalc_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gocalc_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics records request count, latency and in-flight requests. The path
// label is the matched chi route pattern when there is one.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(seconds float64) {
			httpRequestDuration.WithLabelValues(r.Method, routeLabel(r)).Observe(seconds)
		}))

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		timer.ObserveDuration()

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestsTotal.WithLabelValues(r.Method, routeLabel(r), strconv.Itoa(status)).Inc()
	})
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return normalizePath(r.URL.Path)
}

// parameterizedRoutes maps route prefixes to the label used for their
// path parameter.
var parameterizedRoutes = []struct {
	prefix string
	label  string
}{
	{prefix: "/api/v1/calculators/", label: ":name"},
	{prefix: "/api/v1/preferences/", label: ":client"},
}

// normalizePath replaces path parameters to keep label cardinality bounded
// for requests that did not go through the chi router.
// /api/v1/preferences/abc -> /api/v1/preferences/:client
func normalizePath(path string) string {
	for _, route := range parameterizedRoutes {
		rest, ok := strings.CutPrefix(path, route.prefix)
		if !ok || rest == "" || rest[0] == '/' {
			continue
		}

		suffix := ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			suffix = rest[i:]
		}
		return route.prefix + route.label + suffix
	}

	return path
}
