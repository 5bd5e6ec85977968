// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import "testing"

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	c := DefaultConfig()
	if c.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", c.Host, DefaultHost)
	}
	if c.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", c.Port, DefaultPort)
	}
	if c.ConnThreads != DefaultConnThreads {
		t.Errorf("ConnThreads = %d, want %d", c.ConnThreads, DefaultConnThreads)
	}
	if c.ConnQueueSize != DefaultConnQueueSize {
		t.Errorf("ConnQueueSize = %d, want %d", c.ConnQueueSize, DefaultConnQueueSize)
	}
	if c.DBMapSlots != DefaultDBMapSlots {
		t.Errorf("DBMapSlots = %d, want %d", c.DBMapSlots, DefaultDBMapSlots)
	}
	if c.TCPParkMinMillis != DefaultParkMinMillis || c.TCPParkMaxMillis != DefaultParkMaxMillis || c.TCPParkStepMillis != DefaultParkStepMillis {
		t.Errorf("park bounds = %d/%d/%d, want %d/%d/%d",
			c.TCPParkMinMillis, c.TCPParkMaxMillis, c.TCPParkStepMillis,
			DefaultParkMinMillis, DefaultParkMaxMillis, DefaultParkStepMillis)
	}
	if c.ThreadFreeLimit != DefaultThreadFreeLimit {
		t.Errorf("ThreadFreeLimit = %d, want %d", c.ThreadFreeLimit, DefaultThreadFreeLimit)
	}
	if c.Logger == nil || c.MetricsCollector == nil {
		t.Error("Validate should install NoOpLogger/NoOpMetricsCollector defaults")
	}
}

func TestConfigValidateClampsOutOfRangeFields(t *testing.T) {
	c := Config{
		ConnThreads:       -1,
		ConnQueueSize:     0,
		DBMapSlots:        -5,
		TCPParkMinMillis:  -10,
		TCPParkMaxMillis:  0,
		TCPParkStepMillis: 0,
		ThreadFreeLimit:   0,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate returned an error: %v", err)
	}
	if c.ConnThreads != DefaultConnThreads {
		t.Errorf("ConnThreads = %d, want default %d", c.ConnThreads, DefaultConnThreads)
	}
	if c.DBMapSlots != DefaultDBMapSlots {
		t.Errorf("DBMapSlots = %d, want default %d", c.DBMapSlots, DefaultDBMapSlots)
	}
	if c.TCPParkMinMillis != DefaultParkMinMillis {
		t.Errorf("TCPParkMinMillis = %d, want default %d", c.TCPParkMinMillis, DefaultParkMinMillis)
	}
}

func TestConfigValidateClampsConnThreadsToMaxParticipants(t *testing.T) {
	c := Config{ConnThreads: MaxParticipants + 100}
	_ = c.Validate()
	if c.ConnThreads != MaxParticipants {
		t.Errorf("ConnThreads = %d, want clamped to MaxParticipants %d", c.ConnThreads, MaxParticipants)
	}
}

func TestConfigValidateClampsParkMaxBelowMin(t *testing.T) {
	c := Config{TCPParkMinMillis: 100, TCPParkMaxMillis: 10, TCPParkStepMillis: 5}
	_ = c.Validate()
	if c.TCPParkMaxMillis < c.TCPParkMinMillis {
		t.Errorf("TCPParkMaxMillis %d should never be below TCPParkMinMillis %d", c.TCPParkMaxMillis, c.TCPParkMinMillis)
	}
}

func TestConfigAddr(t *testing.T) {
	c := Config{Host: "10.0.0.1", Port: 9090}
	if got, want := c.Addr(), "10.0.0.1:9090"; got != want {
		t.Errorf("Addr() = %q, want %q", got, want)
	}
}
