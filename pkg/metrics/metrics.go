// Package metrics provides Prometheus metrics for sdtug's conversation with the device.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	deviceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdtug_device_requests_total",
			Help: "Total number of requests sent to the device API",
		},
		[]string{"endpoint", "status"},
	)

	deviceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sdtug_device_request_duration_seconds",
			Help:    "Device API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	listingRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sdtug_listing_retries_total",
			Help: "Directory listing attempts retried because the SD card was not ready",
		},
	)

	storagePollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdtug_storage_polls_total",
			Help: "Storage status polls by observed result",
		},
		[]string{"result"},
	)

	bytesDownloaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sdtug_bytes_downloaded_total",
			Help: "Total bytes downloaded from the SD card",
		},
	)
)

// Storage poll results.
const (
	PollNotInserted = "not_inserted"
	PollNotReady    = "not_ready"
	PollReady       = "ready"
	PollError       = "error"
)

// RecordDeviceRequest records a finished device request.
// A status of 0 means the request failed before a response arrived.
func RecordDeviceRequest(endpoint string, status int, duration time.Duration) {
	statusText := "error"
	if status > 0 {
		statusText = strconv.Itoa(status)
	}
	deviceRequestsTotal.WithLabelValues(endpoint, statusText).Inc()
	deviceRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func RecordListingRetry() {
	listingRetriesTotal.Inc()
}

func RecordStoragePoll(result string) {
	storagePollsTotal.WithLabelValues(result).Inc()
}

func RecordDownload(bytes int64) {
	bytesDownloaded.Add(float64(bytes))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
