package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OrdersPlacedTotal      prometheus.Counter
	OrderTransitionsTotal  *prometheus.CounterVec
	CheckoutRejectedTotal  *prometheus.CounterVec
	MessagesPostedTotal    *prometheus.CounterVec
	EventPublishErrorTotal *prometheus.CounterVec
}

// New builds a registry scoped to one service so the admin and storefront
// processes never share collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Order rows created at checkout",
		}),
		OrderTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Applied order status transitions",
		}, []string{"from", "to"}),
		CheckoutRejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_rejected_total",
			Help:      "Checkouts rejected before commit",
		}, []string{"reason"}),
		MessagesPostedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_posted_total",
			Help:      "Messages appended to customer threads",
		}, []string{"sender"}),
		EventPublishErrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_errors_total",
			Help:      "Domain events that failed to publish",
		}, []string{"topic"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersPlacedTotal,
		m.OrderTransitionsTotal,
		m.CheckoutRejectedTotal,
		m.MessagesPostedTotal,
		m.EventPublishErrorTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) OrdersPlaced(n int) {
	if m == nil {
		return
	}
	m.OrdersPlacedTotal.Add(float64(n))
}

func (m *Metrics) OrderTransition(from, to string) {
	if m == nil {
		return
	}
	m.OrderTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *Metrics) CheckoutRejected(reason string) {
	if m == nil {
		return
	}
	m.CheckoutRejectedTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) MessagePosted(sender string) {
	if m == nil {
		return
	}
	m.MessagesPostedTotal.WithLabelValues(sender).Inc()
}

func (m *Metrics) EventPublishFailed(topic string) {
	if m == nil {
		return
	}
	m.EventPublishErrorTotal.WithLabelValues(topic).Inc()
}
