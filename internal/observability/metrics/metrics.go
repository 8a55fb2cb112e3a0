package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "equipcloud_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	uploadRequests *prometheus.CounterVec
	uploadErrors   *prometheus.CounterVec
	uploadLatency  *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	historyRequests prometheus.Counter
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		uploadRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upload_requests_total",
				Help: "Total dataset upload requests by result",
			},
			[]string{"result"},
		)
		uploadErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upload_errors_total",
				Help: "Total dataset upload errors by reason",
			},
			[]string{"reason"},
		)
		uploadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "upload_latency_seconds",
				Help:    "Dataset upload latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		historyRequests = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_requests_total",
				Help: "Total history list requests",
			},
		)

		prometheus.MustRegister(
			uploadRequests,
			uploadErrors,
			uploadLatency,
			reportExportTotal,
			reportExportLatency,
			historyRequests,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveUpload records upload request duration and result.
func ObserveUpload(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if uploadRequests != nil {
		uploadRequests.WithLabelValues(result).Inc()
	}
	if uploadLatency != nil {
		uploadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncUploadError increments the upload error counter.
func IncUploadError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if uploadErrors != nil {
		uploadErrors.WithLabelValues(reason).Inc()
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncHistoryRequest increments the history request counter.
func IncHistoryRequest() {
	if historyRequests != nil {
		historyRequests.Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
