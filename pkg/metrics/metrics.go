package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	// Booking intake
	InboundMessagesTotal *prometheus.CounterVec
	ServiceMatchTotal    *prometheus.CounterVec
	QueueFallbackTotal   *prometheus.CounterVec
	OutboundSendTotal    *prometheus.CounterVec
}

// New registers the collectors in the default prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors in reg
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		InboundMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inbound_messages_total",
			Help:        "Inbound WhatsApp messages by source and outcome",
			ConstLabels: constLabels,
		}, []string{"source", "outcome"}),
		ServiceMatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "service_match_total",
			Help:        "Service resolution results by method (exact, contains, fuzzy, none)",
			ConstLabels: constLabels,
		}, []string{"method"}),
		QueueFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "queue_number_fallback_total",
			Help:        "Queue numbers produced by the timestamp fallback",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		OutboundSendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbound_send_total",
			Help:        "Outbound acknowledgement sends by provider and result",
			ConstLabels: constLabels,
		}, []string{"provider", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.InboundMessagesTotal,
		m.ServiceMatchTotal,
		m.QueueFallbackTotal,
		m.OutboundSendTotal,
	)

	return m
}

// IncInbound is nil-safe so callers can run without metrics
func (m *Metrics) IncInbound(source, outcome string) {
	if m == nil {
		return
	}
	m.InboundMessagesTotal.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) IncServiceMatch(method string) {
	if m == nil {
		return
	}
	m.ServiceMatchTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) IncQueueFallback(reason string) {
	if m == nil {
		return
	}
	m.QueueFallbackTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncOutboundSend(provider, result string) {
	if m == nil {
		return
	}
	m.OutboundSendTotal.WithLabelValues(provider, result).Inc()
}
