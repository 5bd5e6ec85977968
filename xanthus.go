// xanthus.go: package-wide constants and version
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package xanthus

const (
	// Version of the Xanthus store.
	Version = "v0.1.0-dev"

	// DefaultHost is the default bind address.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the default listening port.
	DefaultPort = 8080

	// DefaultConnThreads is the default worker pool size.
	DefaultConnThreads = 4

	// DefaultConnQueueSize is the default per-worker SPSC queue depth.
	DefaultConnQueueSize = 50

	// DefaultDBMapSlots is the default root container table size.
	DefaultDBMapSlots = 100

	// DefaultParkMinMillis is the default Parker floor back-off.
	DefaultParkMinMillis = 0

	// DefaultParkMaxMillis is the default Parker ceiling back-off.
	DefaultParkMaxMillis = 1000

	// DefaultParkStepMillis is the default Parker step increment.
	DefaultParkStepMillis = 50

	// DefaultThreadFreeLimit is the default per-thread free-list scan threshold.
	DefaultThreadFreeLimit = 5
)
