package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns every collector the service exports.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	checkIns        *prometheus.CounterVec
	checkInRejected *prometheus.CounterVec
	checkInCancels  *prometheus.CounterVec

	jobRuns     *prometheus.CounterVec
	jobErrors   *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

func New(registry *prometheus.Registry, env string) *Metrics {
	constLabels := prometheus.Labels{"service": "church-app", "env": env}

	m := &Metrics{
		gatherer: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "church_http_requests_total",
			Help:        "HTTP requests by route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "church_http_request_duration_seconds",
			Help:        "HTTP request latency by route.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "church_attendance_check_ins_total",
			Help:        "Recorded check-ins by church.",
			ConstLabels: constLabels,
		}, []string{"church_id"}),
		checkInRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "church_attendance_check_ins_rejected_total",
			Help:        "Rejected check-ins by reason.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		checkInCancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "church_attendance_check_ins_cancelled_total",
			Help:        "Cancelled check-ins by church.",
			ConstLabels: constLabels,
		}, []string{"church_id"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "church_scheduler_job_runs_total",
			Help:        "Scheduler job runs by name.",
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "church_scheduler_job_errors_total",
			Help:        "Scheduler job failures by name.",
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "church_scheduler_job_duration_seconds",
			Help:        "Scheduler job latency.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			ConstLabels: constLabels,
		}, []string{"job"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.checkIns,
		m.checkInRejected,
		m.checkInCancels,
		m.jobRuns,
		m.jobErrors,
		m.jobDuration,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware labels requests by chi route pattern to keep cardinality low.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) CheckedIn(churchID string) {
	m.checkIns.WithLabelValues(churchID).Inc()
}

func (m *Metrics) CheckInRejected(reason string) {
	m.checkInRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) CheckInCancelled(churchID string) {
	m.checkInCancels.WithLabelValues(churchID).Inc()
}

func (m *Metrics) JobFinished(job string, elapsed time.Duration, err error) {
	m.jobRuns.WithLabelValues(job).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
	if err != nil {
		m.jobErrors.WithLabelValues(job).Inc()
	}
}
