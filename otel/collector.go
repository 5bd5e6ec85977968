// collector.go: OpenTelemetry-backed MetricsCollector for Xanthus
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/xanthus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func workerAttr(workerIndex int) attribute.KeyValue {
	return attribute.Int("worker", workerIndex)
}

// OTelMetricsCollector implements xanthus.MetricsCollector using
// OpenTelemetry: connection accept/close counters, a request-latency
// histogram (for automatic p50/p95/p99 calculation), and a queue-depth
// gauge per worker.
//
// Thread-safety: safe for concurrent use; the underlying OTEL instruments
// are themselves thread-safe and lock-free.
type OTelMetricsCollector struct {
	connectionsAccepted metric.Int64Counter
	connectionsClosed   metric.Int64Counter
	requestLatency      metric.Int64Histogram
	queueDepth          metric.Int64Gauge
}

// Options configures OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/xanthus".
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing metrics
// from multiple Server instances.
func WithMeterName(name string) Option {
	return func(o *Options) { o.MeterName = name }
}

// NewOTelMetricsCollector creates a metrics collector backed by provider.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/xanthus"}
	for _, opt := range opts {
		opt(&options)
	}
	meter := provider.Meter(options.MeterName)

	c := &OTelMetricsCollector{}
	var err error

	c.connectionsAccepted, err = meter.Int64Counter(
		"xanthus_connections_accepted_total",
		metric.WithDescription("Total number of accepted connections"),
	)
	if err != nil {
		return nil, err
	}

	c.connectionsClosed, err = meter.Int64Counter(
		"xanthus_connections_closed_total",
		metric.WithDescription("Total number of closed connections"),
	)
	if err != nil {
		return nil, err
	}

	c.requestLatency, err = meter.Int64Histogram(
		"xanthus_request_latency_ns",
		metric.WithDescription("Latency of one connection's request/response cycle in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	c.queueDepth, err = meter.Int64Gauge(
		"xanthus_worker_queue_depth",
		metric.WithDescription("Sampled depth of a worker's connection queue"),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RecordConnectionAccepted implements xanthus.MetricsCollector.
func (c *OTelMetricsCollector) RecordConnectionAccepted() {
	c.connectionsAccepted.Add(context.Background(), 1)
}

// RecordConnectionClosed implements xanthus.MetricsCollector.
func (c *OTelMetricsCollector) RecordConnectionClosed() {
	c.connectionsClosed.Add(context.Background(), 1)
}

// RecordRequestLatency implements xanthus.MetricsCollector.
func (c *OTelMetricsCollector) RecordRequestLatency(latencyNs int64) {
	c.requestLatency.Record(context.Background(), latencyNs)
}

// RecordQueueDepth implements xanthus.MetricsCollector.
func (c *OTelMetricsCollector) RecordQueueDepth(workerIndex int, depth int) {
	c.queueDepth.Record(context.Background(), int64(depth),
		metric.WithAttributes(workerAttr(workerIndex)))
}

// Compile-time interface check.
var _ xanthus.MetricsCollector = (*OTelMetricsCollector)(nil)
