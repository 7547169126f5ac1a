package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "powerpick",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "powerpick",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "powerpick",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	picksGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powerpick",
			Subsystem: "picks",
			Name:      "generated_total",
			Help:      "Total number of generated pick lines.",
		},
	)

	pickBatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powerpick",
			Subsystem: "picks",
			Name:      "batches_total",
			Help:      "Total number of pick generation requests.",
		},
	)

	checksEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "powerpick",
			Subsystem: "picks",
			Name:      "checks_total",
			Help:      "Total number of prize evaluations, by match tier.",
		},
		[]string{"tier"},
	)

	refreshCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "powerpick",
			Subsystem: "refresh",
			Name:      "cycles_total",
			Help:      "Total number of feed refresh cycles.",
		},
		[]string{"status"},
	)

	refreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "powerpick",
			Subsystem: "refresh",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of feed refresh cycles.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	drawsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powerpick",
			Subsystem: "refresh",
			Name:      "draws_added_total",
			Help:      "Total number of new draws landed by refreshes.",
		},
	)

	cachedDraws = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "powerpick",
			Subsystem: "store",
			Name:      "cached_draws",
			Help:      "Number of draws currently cached.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		picksGenerated,
		pickBatches,
		checksEvaluated,
		refreshCycles,
		refreshDuration,
		drawsAdded,
		cachedDraws,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordPickBatch records one generation request and its line count.
func RecordPickBatch(lines int) {
	pickBatches.Inc()
	picksGenerated.Add(float64(lines))
}

// RecordCheck records a prize evaluation under its match tier, e.g.
// "3+pb" or "0".
func RecordCheck(whiteMatches int, powerballMatch bool) {
	tier := strconv.Itoa(whiteMatches)
	if powerballMatch {
		tier += "+pb"
	}
	checksEvaluated.WithLabelValues(tier).Inc()
}

// RecordRefresh records the outcome of one refresh cycle.
func RecordRefresh(duration time.Duration, added int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	refreshCycles.WithLabelValues(status).Inc()
	refreshDuration.Observe(duration.Seconds())
	if added > 0 {
		drawsAdded.Add(float64(added))
	}
}

// SetCachedDraws publishes the current cache size.
func SetCachedDraws(n int) {
	cachedDraws.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses per-date URLs so the label set stays bounded.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] != "v1" {
		return "/" + parts[0]
	}
	if len(parts) == 1 {
		return "/v1"
	}
	if parts[1] == "draws" && len(parts) == 3 && parts[2] != "latest" {
		return "/v1/draws/:date"
	}
	return "/" + strings.Join(parts, "/")
}
