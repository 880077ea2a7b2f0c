package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Domain event names recorded by the usecases.
const (
	EventUserRegistered      = "user_registered"
	EventJobOfferCreated     = "job_offer_created"
	EventApplicationCreated  = "application_created"
	EventApplicationStatus   = "application_status_changed"
	EventMessageSent         = "message_sent"
	EventFileUploaded        = "file_uploaded"
	EventRecommendationsHit  = "recommendations_cache_hit"
	EventRecommendationsMiss = "recommendations_cache_miss"
)

// Collector owns a private registry so parallel tests and multiple apps in
// one process never collide on global registration.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	DomainEvents *prometheus.CounterVec
	WSClients    prometheus.Gauge
}

func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	domainEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events by name",
		},
		[]string{"event"},
	)

	wsClients := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Connected websocket clients",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		domainEvents,
		wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		registry:     registry,
		HTTPRequests: httpRequests,
		HTTPDuration: httpDuration,
		DomainEvents: domainEvents,
		WSClients:    wsClients,
	}
}

func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Event counts one occurrence of a domain event. Safe on a nil collector.
func (c *Collector) Event(name string) {
	if c == nil {
		return
	}
	c.DomainEvents.WithLabelValues(name).Inc()
}

func (c *Collector) ClientConnected() {
	if c == nil {
		return
	}
	c.WSClients.Inc()
}

func (c *Collector) ClientDisconnected() {
	if c == nil {
		return
	}
	c.WSClients.Dec()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
