package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	AvailabilitySlots *prometheus.HistogramVec
	BookingEvents     *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (удобно для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		AvailabilitySlots: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_per_request",
			Help:        "Number of slots produced by one availability computation",
			ConstLabels: constLabels,
			Buckets:     prometheus.LinearBuckets(0, 10, 10),
		}, []string{}),

		BookingEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_events_total",
			Help:        "Booking events published to the broker",
			ConstLabels: constLabels,
		}, []string{"type", "result"}),
	}
}

// ObserveAvailabilitySlots записывает количество слотов одного расчёта доступности.
// Безопасно вызывать на nil.
func (m *Metrics) ObserveAvailabilitySlots(count int) {
	if m == nil {
		return
	}
	m.AvailabilitySlots.WithLabelValues().Observe(float64(count))
}

// RecordBookingEvent учитывает отправку события бронирования. Безопасно вызывать на nil.
func (m *Metrics) RecordBookingEvent(eventType string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.BookingEvents.WithLabelValues(eventType, result).Inc()
}
