package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Requests counts HTTP requests by endpoint name.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"endpoint"})

	// Latency records request latency by endpoint name.
	Latency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_latency_seconds",
		Help: "Request latency",
	}, []string{"endpoint"})

	// StorageFiles tracks the number of files in the data directory,
	// updated by the background scanner.
	StorageFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storage_files",
		Help: "Number of files in the data directory",
	})

	// StorageBytes tracks the total size of the data directory.
	StorageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storage_bytes",
		Help: "Total bytes of files in the data directory",
	})
)

// Instrument wraps a handler so every call increments the endpoint's
// request counter and records its latency.
func Instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Requests.WithLabelValues(endpoint).Inc()
		start := time.Now()
		defer func() {
			Latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}()
		next(w, r)
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
