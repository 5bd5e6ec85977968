// config.go: server configuration for Xanthus
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package xanthus

import (
	"net"
	"strconv"
)

// Config holds the construction-time parameters for a Server (spec.md §6).
type Config struct {
	// Host is the address the TCP acceptor binds to. Default: DefaultHost.
	Host string

	// Port is the TCP port the acceptor binds to. Default: DefaultPort.
	Port int

	// ConnThreads is the fixed worker pool size. Must be > 0 and no larger
	// than MaxParticipants. Default: DefaultConnThreads.
	ConnThreads int

	// ConnQueueSize is the bound on each worker's SPSC connection queue.
	// Default: DefaultConnQueueSize.
	ConnQueueSize int

	// DBMapSlots sizes the root container's HashTrie table, and every
	// Map's table a CMD_SET_KV create_set_map's into existence.
	// Default: DefaultDBMapSlots.
	DBMapSlots int

	// TCPParkMinMillis, TCPParkMaxMillis, TCPParkStepMillis configure the
	// acceptor's and every worker's adaptive back-off (§4.H Parker).
	// Defaults: DefaultParkMinMillis / DefaultParkMaxMillis / DefaultParkStepMillis.
	TCPParkMinMillis  int
	TCPParkMaxMillis  int
	TCPParkStepMillis int

	// ThreadFreeLimit is the registry-wide default free-list scan threshold
	// newly-touched participants inherit (§4.B). Default: DefaultThreadFreeLimit.
	ThreadFreeLimit int

	// Logger is used for connection, worker and interpreter diagnostics.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// MetricsCollector records connection, request and queue-depth metrics.
	// If nil, NoOpMetricsCollector is used (zero overhead). Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector
}

// Validate normalizes Config in place, clamping out-of-range fields to
// their documented defaults. It never returns a non-nil error today — the
// signature matches balios's Config.Validate so embedders that already
// check the error keep working if a future field gains real validation.
func (c *Config) Validate() error {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}

	if c.ConnThreads <= 0 {
		c.ConnThreads = DefaultConnThreads
	}
	if c.ConnThreads > MaxParticipants {
		c.ConnThreads = MaxParticipants
	}

	if c.ConnQueueSize <= 0 {
		c.ConnQueueSize = DefaultConnQueueSize
	}

	if c.DBMapSlots <= 0 {
		c.DBMapSlots = DefaultDBMapSlots
	}

	if c.TCPParkMinMillis < 0 {
		c.TCPParkMinMillis = DefaultParkMinMillis
	}
	if c.TCPParkStepMillis <= 0 {
		c.TCPParkStepMillis = DefaultParkStepMillis
	}
	if c.TCPParkMaxMillis <= 0 {
		c.TCPParkMaxMillis = DefaultParkMaxMillis
	}
	if c.TCPParkMaxMillis < c.TCPParkMinMillis {
		c.TCPParkMaxMillis = c.TCPParkMinMillis
	}

	if c.ThreadFreeLimit <= 0 {
		c.ThreadFreeLimit = DefaultThreadFreeLimit
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a Config with every field at its documented
// default (spec.md §6: "127.0.0.1:8080, 4 threads, queue 50, 100 root-map
// slots, park 0/1000/50 ms, free-list limit 5").
func DefaultConfig() Config {
	c := Config{}
	_ = c.Validate()
	return c
}

// Addr returns the host:port pair Server.Start binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
