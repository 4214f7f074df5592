// AngelaMos | 2026
// metrics.go

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
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_http_requests_total",
			Help: "Total HTTP requests by route pattern, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "museum_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "museum_http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	MirrorExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_mirror_exports_total",
			Help: "Catalog mirror exports by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	SeedRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_seed_records_total",
			Help: "Catalog records inserted from seed files",
		},
		[]string{"kind"},
	)

	VisitsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_visits_recorded_total",
			Help: "Room visits recorded",
		},
		[]string{"room"},
	)

	ScoresRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_scores_recorded_total",
			Help: "Game scores recorded",
		},
		[]string{"game_mode"},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_auth_attempts_total",
			Help: "Register and login attempts by outcome",
		},
		[]string{"action", "outcome"},
	)
)

func RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func RecordMirrorExport(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	MirrorExportsTotal.WithLabelValues(kind, outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
