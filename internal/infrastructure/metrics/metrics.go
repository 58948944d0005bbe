package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements usecase.MetricsRecorder.
type Metrics struct {
	// Schedule metrics
	SchedulesBuilt     prometheus.Counter
	ScheduleDuration   prometheus.Histogram
	ScheduleTermMonths prometheus.Histogram

	// Calculator metrics
	Calculations *prometheus.CounterVec

	// History metrics
	HistoryAppends *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SchedulesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "gocalc_schedules_built_total",
			Help: "Total number of amortization schedules computed",
		}),
		ScheduleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocalc_schedule_duration_seconds",
			Help:    "Time spent computing amortization schedules",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
		ScheduleTermMonths: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocalc_schedule_term_months",
			Help:    "Loan terms of computed schedules",
			Buckets: []float64{12, 36, 60, 120, 240, 360, 600, 1200},
		}),

		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocalc_calculations_total",
				Help: "Total calculator evaluations by calculator and status",
			},
			[]string{"calculator", "status"},
		),

		HistoryAppends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocalc_history_appends_total",
				Help: "Total history appends by status",
			},
			[]string{"status"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocalc_schedule_cache_lookups_total",
				Help: "Schedule cache lookups by result",
			},
			[]string{"result"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gocalc_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveSchedule records a computed schedule.
func (m *Metrics) ObserveSchedule(termMonths int, duration time.Duration) {
	m.SchedulesBuilt.Inc()
	m.ScheduleDuration.Observe(duration.Seconds())
	m.ScheduleTermMonths.Observe(float64(termMonths))
}

// ObserveCalculation records a calculator evaluation.
func (m *Metrics) ObserveCalculation(calculator string, err error) {
	m.Calculations.WithLabelValues(calculator, status(err)).Inc()
}

// ObserveHistoryAppend records a history append.
func (m *Metrics) ObserveHistoryAppend(err error) {
	m.HistoryAppends.WithLabelValues(status(err)).Inc()
}

// ObserveCache records a schedule cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	m.CacheLookups.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

// ObserveRateLimited records a rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.RateLimitHits.Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
