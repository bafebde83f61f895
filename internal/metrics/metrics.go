package metrics

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the Prometheus metrics for hostprobe
type Metrics struct {
	// Counters
	ProbesTotal     *prometheus.CounterVec
	ProbeErrors     *prometheus.CounterVec
	DetectionsTotal *prometheus.CounterVec
	SinkErrors      *prometheus.CounterVec
	RecordsEmitted  *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec

	// Histograms
	DetectDuration *prometheus.HistogramVec
	HTTPDuration   *prometheus.HistogramVec
}

// Config holds configuration for the metrics server
type Config struct {
	Enabled    bool
	Addr       string
	TLSCert    string
	TLSKey     string
	RequireTLS bool
}

// LoadConfig loads metrics configuration from environment variables
func LoadConfig() Config {
	return Config{
		Enabled:    getBool("METRICS_ENABLED", false),
		Addr:       getOr("METRICS_ADDR", "127.0.0.1:9090"),
		TLSCert:    getOr("METRICS_TLS_CERT", ""),
		TLSKey:     getOr("METRICS_TLS_KEY", ""),
		RequireTLS: getBool("METRICS_REQUIRE_TLS", false),
	}
}

// NewMetrics creates and registers all hostprobe metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		ProbesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostprobe_probes_total",
				Help: "Total outbound probes issued by detection method",
			},
			[]string{"method"},
		),

		ProbeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostprobe_probe_errors_total",
				Help: "Total probes that failed or timed out, by method",
			},
			[]string{"method"},
		),

		DetectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostprobe_detections_total",
				Help: "Total detection runs by primary provider outcome",
			},
			[]string{"provider"},
		),

		SinkErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostprobe_sink_errors_total",
				Help: "Total errors writing a detection record to a sink",
			},
			[]string{"sink", "error_type"},
		),

		RecordsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostprobe_records_emitted_total",
				Help: "Total detection records accepted by a sink",
			},
			[]string{"sink"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostprobe_http_requests_total",
				Help: "Total HTTP requests by endpoint and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		DetectDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostprobe_detect_duration_seconds",
				Help:    "Wall-clock duration of a full detection run",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 20.0},
			},
			[]string{"outcome"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostprobe_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"endpoint", "method"},
		),
	}

	prometheus.MustRegister(m.ProbesTotal)
	prometheus.MustRegister(m.ProbeErrors)
	prometheus.MustRegister(m.DetectionsTotal)
	prometheus.MustRegister(m.SinkErrors)
	prometheus.MustRegister(m.RecordsEmitted)
	prometheus.MustRegister(m.HTTPRequests)
	prometheus.MustRegister(m.DetectDuration)
	prometheus.MustRegister(m.HTTPDuration)

	return m
}

// Server represents the metrics HTTP server
type Server struct {
	server *http.Server
	config Config
}

// NewServer creates a new metrics server
func NewServer(config Config) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:         config.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if config.RequireTLS && config.TLSCert != "" && config.TLSKey != "" {
		srv.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &Server{server: srv, config: config}
}

// Start starts the metrics server in a separate goroutine
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.Printf("metrics: disabled (METRICS_ENABLED=false)")
		return nil
	}

	go func() {
		var err error
		if s.config.RequireTLS && s.config.TLSCert != "" && s.config.TLSKey != "" {
			log.Printf("metrics: HTTPS server listening on %s", s.config.Addr)
			err = s.server.ListenAndServeTLS(s.config.TLSCert, s.config.TLSKey)
		} else {
			log.Printf("metrics: HTTP server listening on %s", s.config.Addr)
			err = s.server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Printf("metrics: server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics server
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	log.Printf("metrics: shutting down server...")
	return s.server.Shutdown(ctx)
}

func getOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Global metrics instance; registration against the default registry must
// happen once per process.
var defaultMetrics *Metrics

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	if defaultMetrics == nil {
		defaultMetrics = NewMetrics()
	}
	return defaultMetrics
}

// Convenience methods for common operations
func (m *Metrics) IncrementProbes(method string) {
	m.ProbesTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) IncrementProbeErrors(method string) {
	m.ProbeErrors.WithLabelValues(method).Inc()
}

func (m *Metrics) IncrementDetections(provider string) {
	m.DetectionsTotal.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementSinkErrors(sink, errorType string) {
	m.SinkErrors.WithLabelValues(sink, errorType).Inc()
}

func (m *Metrics) IncrementRecordsEmitted(sink string) {
	m.RecordsEmitted.WithLabelValues(sink).Inc()
}

func (m *Metrics) IncrementHTTPRequests(endpoint, method, status string) {
	m.HTTPRequests.WithLabelValues(endpoint, method, status).Inc()
}

func (m *Metrics) ObserveDetectDuration(outcome string, duration time.Duration) {
	m.DetectDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) ObserveHTTPDuration(endpoint, method string, duration time.Duration) {
	m.HTTPDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}
