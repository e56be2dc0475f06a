package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	gateRejections   *prometheus.CounterVec
	modelAttempts    *prometheus.CounterVec
	modelFallbacks   *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exampilot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "exampilot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "exampilot",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exampilot",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total finished analysis runs by terminal status.",
		},
		[]string{"service", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "exampilot",
			Subsystem: "analysis",
			Name:      "run_duration_seconds",
			Help:      "Analysis run duration in seconds by terminal status.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 900},
		},
		[]string{"service", "status"},
	)
	gateRejections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exampilot",
			Subsystem: "gate",
			Name:      "rejections_total",
			Help:      "Total documents rejected by a validation gate.",
		},
		[]string{"service", "gate"},
	)
	modelAttempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exampilot",
			Subsystem: "model",
			Name:      "attempts_total",
			Help:      "Total per-model invocation outcomes.",
		},
		[]string{"service", "model", "outcome"},
	)
	modelFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exampilot",
			Subsystem: "model",
			Name:      "fallbacks_total",
			Help:      "Total switches away from an unavailable model.",
		},
		[]string{"service", "model"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysesTotal,
		analysisDuration,
		gateRejections,
		modelAttempts,
		modelFallbacks,
	)

	return &Metrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		analysesTotal:    analysesTotal,
		analysisDuration: analysisDuration,
		gateRejections:   gateRejections,
		modelAttempts:    modelAttempts,
		modelFallbacks:   modelFallbacks,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/analyses/") && strings.HasSuffix(path, "/export"):
		return "/v1/analyses/{analysis_id}/export"
	case strings.HasPrefix(path, "/v1/analyses/"):
		return "/v1/analyses/{analysis_id}"
	default:
		return path
	}
}

// PipelineObserver bridges analysis pipeline events onto the registry. It is
// what the use cases see; they never touch prometheus directly.
type PipelineObserver struct {
	metrics *Metrics
	service string
}

func (m *Metrics) Observer(service string) *PipelineObserver {
	return &PipelineObserver{metrics: m, service: service}
}

func (o *PipelineObserver) ObserveAnalysis(status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	o.metrics.analysesTotal.WithLabelValues(o.service, status).Inc()
	o.metrics.analysisDuration.WithLabelValues(o.service, status).Observe(duration.Seconds())
}

func (o *PipelineObserver) ObserveGateRejection(gate string) {
	if gate == "" {
		gate = "unknown"
	}
	o.metrics.gateRejections.WithLabelValues(o.service, gate).Inc()
}

func (o *PipelineObserver) ObserveModelAttempt(model, outcome string) {
	if model == "" {
		model = "unknown"
	}
	if outcome == "" {
		outcome = "unknown"
	}
	o.metrics.modelAttempts.WithLabelValues(o.service, model, outcome).Inc()
}

func (o *PipelineObserver) ObserveModelFallback(model string) {
	if model == "" {
		model = "unknown"
	}
	o.metrics.modelFallbacks.WithLabelValues(o.service, model).Inc()
}

// statusRecorder captures the status code for the request counter. Responses
// are buffered JSON or file downloads; nothing streams.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
