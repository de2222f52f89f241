package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP records per-operation request metrics.
type HTTP struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	inFlight *prometheus.GaugeVec
	failures *prometheus.CounterVec
}

// Metrics are registered once per process on the default registry.
var defaultHTTP = newHTTP(prometheus.DefaultRegisterer)

func NewHTTP() *HTTP {
	return defaultHTTP
}

// NewHTTPWith registers a fresh set of collectors on reg.
func NewHTTPWith(reg prometheus.Registerer) *HTTP {
	return newHTTP(reg)
}

func newHTTP(reg prometheus.Registerer) *HTTP {
	h := &HTTP{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dinein",
			Subsystem: "http",
			Name:      "operation_duration_seconds",
			Help:      "Duration of handled operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "code"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dinein",
			Subsystem: "http",
			Name:      "operations_total",
			Help:      "Handled operations by status code.",
		}, []string{"operation", "code"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dinein",
			Subsystem: "http",
			Name:      "operations_in_flight",
			Help:      "Operations currently being handled.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dinein",
			Subsystem: "callable",
			Name:      "errors_total",
			Help:      "Failed callable invocations by error code.",
		}, []string{"operation", "code"}),
	}

	if reg != nil {
		reg.MustRegister(h.duration, h.requests, h.inFlight, h.failures)
	}
	return h
}

// Start instruments one operation; call finish when the handler returns.
func (h *HTTP) Start(w http.ResponseWriter, r *http.Request, operation string) (http.ResponseWriter, *http.Request, func()) {
	if h == nil {
		return w, r, func() {}
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	started := time.Now()
	h.inFlight.WithLabelValues(operation).Inc()

	finish := func() {
		code := strconv.Itoa(rec.status)
		h.inFlight.WithLabelValues(operation).Dec()
		h.requests.WithLabelValues(operation, code).Inc()
		h.duration.WithLabelValues(operation, code).Observe(time.Since(started).Seconds())
	}

	return rec, r, finish
}

// Failure counts a classified callable error.
func (h *HTTP) Failure(operation, code string) {
	if h == nil {
		return
	}
	h.failures.WithLabelValues(operation, code).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Flush keeps server-sent event streams working behind the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
