// Package metrics exposes Prometheus counters for HTTP traffic and domain
// event delivery.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

const namespace = "taskhub"

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

type Metrics struct {
	gatherer        prometheus.Gatherer
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	eventsPublished *prometheus.CounterVec
}

// New registers the collectors with reg. Registering twice on the same
// registry fails.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		gatherer: reg,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events handed to the dispatcher, by kind and outcome",
		}, []string{"kind", "outcome"}),
	}

	for _, c := range []prometheus.Collector{m.requestTotal, m.requestDuration, m.eventsPublished} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware records one sample per request, labelled with the route
// template so that ids do not explode the label space.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.requestTotal.With(labels).Inc()
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument wraps a dispatcher and counts every publish attempt.
func (m *Metrics) Instrument(next ports.EventDispatcher) ports.EventDispatcher {
	return &countingDispatcher{next: next, published: m.eventsPublished}
}

type countingDispatcher struct {
	next      ports.EventDispatcher
	published *prometheus.CounterVec
}

func (d *countingDispatcher) Publish(ctx context.Context, env domain.Envelope) error {
	err := d.next.Publish(ctx, env)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	d.published.WithLabelValues(string(env.Event.Kind()), outcome).Inc()
	return err
}
