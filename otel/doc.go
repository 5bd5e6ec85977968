// Package otel provides an OpenTelemetry-backed implementation of
// xanthus.MetricsCollector.
//
// # Overview
//
// This package is a separate module from the Xanthus core so that
// applications which don't need metrics collection don't pay for the OTEL
// dependencies. It exposes connection accept/close counters, a
// request-latency histogram (for automatic p50/p95/p99 percentile
// calculation), and a per-worker queue-depth gauge.
//
// # Quick start
//
//	import (
//	    "github.com/agilira/xanthus"
//	    xanthusotel "github.com/agilira/xanthus/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	collector, _ := xanthusotel.NewOTelMetricsCollector(provider)
//
//	cfg := xanthus.DefaultConfig()
//	cfg.MetricsCollector = collector
//	srv, _ := xanthus.NewServer(cfg)
//	srv.Start()
//
// # Metrics exposed
//
//   - xanthus_connections_accepted_total (counter)
//   - xanthus_connections_closed_total (counter)
//   - xanthus_request_latency_ns (histogram)
//   - xanthus_worker_queue_depth (gauge, labeled by worker index)
//
// All instruments are thread-safe; the core's NoOpMetricsCollector is used
// whenever Config.MetricsCollector is left nil, so there is zero overhead
// by default.
package otel
