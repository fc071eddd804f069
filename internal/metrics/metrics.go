// Package metrics holds the Prometheus collectors for form submissions and uploads.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values
const (
	ResultSuccess       = "success"
	ResultInvalid       = "invalid"
	ResultNotConfigured = "not_configured"
	ResultFailed        = "failed"
)

var (
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arrurru_notifications_total",
			Help: "Access request notifications by result",
		},
		[]string{"result"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arrurru_uploads_total",
			Help: "File uploads by result",
		},
		[]string{"result"},
	)

	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arrurru_upload_bytes_total",
			Help: "Decoded bytes written to object storage",
		},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arrurru_external_call_duration_seconds",
			Help:    "Duration of calls to Telegram and object storage",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"target"},
	)
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
