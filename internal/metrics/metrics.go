// Package metrics provides Prometheus metrics for the relay.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "relay"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.005, .01, .05, .1, .5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path"},
	)
)

// Webhook metrics
var (
	WebhookCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "calls_total",
			Help:      "Calls made to the remote webhook by method and result",
		},
		[]string{"method", "result"},
	)

	WebhookCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "call_duration_seconds",
			Help:      "Remote webhook latency in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"method"},
	)
)

// Image metrics
var (
	ImageDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "downloads_total",
			Help:      "Image download attempts by result",
		},
		[]string{"result"},
	)

	ImageDownloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "download_duration_seconds",
			Help:      "Image download latency in seconds",
			Buckets:   []float64{.05, .1, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// ImageProjects, ImageFiles and ImageBytes are refreshed by the stats job.
	ImageProjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "projects",
			Help:      "Project directories under the images root",
		},
	)

	ImageFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "files",
			Help:      "Image files stored under the images root",
		},
	)

	ImageBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "bytes",
			Help:      "Total size of stored images in bytes",
		},
	)
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordWebhookCall records one call to the remote webhook.
func RecordWebhookCall(method string, duration time.Duration, err error) {
	WebhookCallsTotal.WithLabelValues(method, result(err)).Inc()
	WebhookCallDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordImageDownload records one image download attempt.
func RecordImageDownload(duration time.Duration, err error) {
	ImageDownloadsTotal.WithLabelValues(result(err)).Inc()
	ImageDownloadDuration.Observe(duration.Seconds())
}
