package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DBQueryDuration *prometheus.HistogramVec
	DBPoolOpenConns prometheus.Gauge
	DBPoolIdleConns prometheus.Gauge
	DBPoolInUse     prometheus.Gauge

	OutboxPublishedTotal prometheus.Counter
	OutboxFailedTotal    prometheus.Counter
	SheetsRateLimitTotal prometheus.Counter
	NotifyFailedTotal    prometheus.Counter
}

// IncOutboxPublished инкрементирует счётчик доставленных событий
func (m *Metrics) IncOutboxPublished() { m.OutboxPublishedTotal.Inc() }

// IncOutboxFailed инкрементирует счётчик событий, снятых после исчерпания попыток
func (m *Metrics) IncOutboxFailed() { m.OutboxFailedTotal.Inc() }

// IncSheetsRateLimited инкрементирует счётчик упоров в лимиты Sheets API
func (m *Metrics) IncSheetsRateLimited() { m.SheetsRateLimitTotal.Inc() }

// IncNotifyFailed инкрементирует счётчик недоставленных уведомлений
func (m *Metrics) IncNotifyFailed() { m.NotifyFailedTotal.Inc() }

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: labels,
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: labels,
		}),

		DBPoolIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: labels,
		}),

		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),

		OutboxPublishedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "outbox_events_published_total",
			Help:        "Total number of outbox events mirrored to the spreadsheet",
			ConstLabels: labels,
		}),

		OutboxFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "outbox_events_failed_total",
			Help:        "Total number of outbox events dropped after the retry budget",
			ConstLabels: labels,
		}),

		SheetsRateLimitTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "sheets_rate_limited_total",
			Help:        "Total number of rate-limited Google Sheets calls",
			ConstLabels: labels,
		}),

		NotifyFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Total number of failed chat notifications",
			ConstLabels: labels,
		}),
	}
}
