package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	BookingOutcomes *prometheus.CounterVec
	ClaimConflicts  *prometheus.CounterVec
	Compensations   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре (для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_outcomes_total",
			Help: "Booking attempts by final outcome",
		}, []string{"service", "outcome"}),

		ClaimConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_claim_conflicts_total",
			Help: "Collaborator claims lost to a concurrent booking",
		}, []string{"service"}),

		Compensations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_compensations_total",
			Help: "Collaborator releases performed after a failed persist step",
		}, []string{"service", "result"}),
	}
}

// ServiceName имя сервиса, используемое в метках
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// RecordBookingOutcome увеличивает счетчик исходов бронирования
func (m *Metrics) RecordBookingOutcome(outcome string) {
	m.BookingOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordClaimConflict увеличивает счетчик проигранных гонок за исполнителя
func (m *Metrics) RecordClaimConflict() {
	m.ClaimConflicts.WithLabelValues(m.serviceName).Inc()
}

// RecordCompensation фиксирует компенсирующее освобождение исполнителя
func (m *Metrics) RecordCompensation(success bool) {
	result := "ok"
	if !success {
		result = "failed"
	}
	m.Compensations.WithLabelValues(m.serviceName, result).Inc()
}

// SetPoolStats публикует состояние пула соединений БД
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
}
