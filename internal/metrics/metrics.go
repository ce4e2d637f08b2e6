// Package metrics wraps the Prometheus collectors the server exports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "menutree"

// IncrementalCounter counts labelled events.
type IncrementalCounter interface {
	Increment(val ...string)
}

// DurationObserver records labelled durations.
type DurationObserver interface {
	Observe(d time.Duration, val ...string)
}

// Counter is a labelled Prometheus counter.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounterWithRegistry registers a counter vector on reg.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Histogram is a labelled Prometheus histogram measured in seconds.
type Histogram struct {
	Name string
	Help string

	vec *prometheus.HistogramVec
}

func (h *Histogram) Observe(d time.Duration, val ...string) {
	h.vec.WithLabelValues(val...).Observe(d.Seconds())
}

// NewHistogramWithRegistry registers a histogram vector on reg using the
// default buckets.
func NewHistogramWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
		Buckets:   prometheus.DefBuckets,
	}, labels)

	reg.MustRegister(vec)

	return &Histogram{
		Name: name,
		Help: help,
		vec:  vec,
	}
}

// Set bundles the collectors used by the API and the service layer.
type Set struct {
	Registry        *prometheus.Registry
	Requests        *Counter
	RequestDuration *Histogram
	Mutations       *Counter
}

// NewSet creates a fresh registry with process and Go collectors plus the
// application metrics. Each call gets its own registry so tests never clash.
func NewSet() *Set {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Set{
		Registry:        reg,
		Requests:        NewCounterWithRegistry(reg, "http_requests_total", "HTTP requests by method, route and status.", "method", "route", "status"),
		RequestDuration: NewHistogramWithRegistry(reg, "http_request_duration_seconds", "HTTP request latency by method and route.", "method", "route"),
		Mutations:       NewCounterWithRegistry(reg, "tree_mutations_total", "Tree mutations by operation and result.", "op", "result"),
	}
}

// Handler serves the set's registry in the Prometheus text format.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}
