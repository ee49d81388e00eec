package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "velve"

// Metrics holds every collector the site exports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	contactChanges *prometheus.CounterVec
	navigations    *prometheus.CounterVec
	localeChanges  *prometheus.CounterVec
	rateLimited    prometheus.Counter
}

// New registers the collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		contactChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_transitions_total",
			Help:      "Contact form state changes.",
		}, []string{"from", "to"}),
		navigations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Page navigations by target page.",
		}, []string{"page"}),
		localeChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locale_changes_total",
			Help:      "Locale switches by resulting locale.",
		}, []string{"locale"}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the contact rate limiter.",
		}),
	}
}

// ContactTransition counts a contact form state change.
func (m *Metrics) ContactTransition(from, to string) {
	m.contactChanges.WithLabelValues(from, to).Inc()
}

func (m *Metrics) Navigation(page string) {
	m.navigations.WithLabelValues(page).Inc()
}

func (m *Metrics) LocaleChange(locale string) {
	m.localeChanges.WithLabelValues(locale).Inc()
}

func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}

// Gauge registers a gauge whose value is read from fn at scrape time.
func (m *Metrics) Gauge(name, help string, fn func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and duration. The route label is the chi
// route pattern so ids in paths cannot explode cardinality; unmatched
// requests share the "unmatched" label.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Flush keeps SSE responses streaming through the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
