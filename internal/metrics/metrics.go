package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors; /metrics serves only this registry.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "go_asset",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "go_asset",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "go_asset",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	scrapDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "go_asset",
			Subsystem: "scrap",
			Name:      "decisions_total",
			Help:      "Scrap request decisions by outcome (advanced, approved, rejected).",
		},
		[]string{"outcome"},
	)

	scrapSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "go_asset",
			Subsystem: "scrap",
			Name:      "submissions_total",
			Help:      "Scrap requests submitted.",
		},
	)

	depreciationAssets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "go_asset",
			Subsystem: "depreciation",
			Name:      "assets_total",
			Help:      "Assets processed by depreciation runs, by result.",
		},
		[]string{"result"},
	)

	outboxRelayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "go_asset",
			Subsystem: "outbox",
			Name:      "relayed_total",
			Help:      "Outbox events handed to Kafka, by result (sent, failed).",
		},
		[]string{"result"},
	)

	depreciationBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "go_asset",
			Subsystem: "depreciation",
			Name:      "batch_duration_seconds",
			Help:      "Duration of depreciation batch runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		scrapDecisions,
		scrapSubmissions,
		depreciationAssets,
		depreciationBatchDuration,
		outboxRelayed,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request count and latency per route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordScrapSubmission() {
	scrapSubmissions.Inc()
}

// RecordScrapDecision: outcome is advanced, approved or rejected.
func RecordScrapDecision(outcome string) {
	scrapDecisions.WithLabelValues(outcome).Inc()
}

func RecordDepreciationBatch(updated, failed int, duration time.Duration) {
	depreciationAssets.WithLabelValues("updated").Add(float64(updated))
	depreciationAssets.WithLabelValues("failed").Add(float64(failed))
	depreciationBatchDuration.Observe(duration.Seconds())
}

func RecordOutboxRelay(sent, failed int) {
	outboxRelayed.WithLabelValues("sent").Add(float64(sent))
	outboxRelayed.WithLabelValues("failed").Add(float64(failed))
}
