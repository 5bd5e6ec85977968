// server.go: wires the epoch registry, container root, worker pool and
// acceptor into the running store described by spec.md §2's data-flow
// diagram.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import "sync"

// Server is a running Xanthus instance: one epoch registry, one root
// Container (always a Map), one WorkerPool, and (once Start has been
// called) one Acceptor.
type Server struct {
	cfg  Config
	reg  *Registry
	root *Container
	pool *WorkerPool

	mu      sync.Mutex
	acc     *Acceptor
	started bool
}

// NewServer builds a Server from cfg without binding anything. cfg is
// normalized in place via Validate.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := NewRegistry(cfg.ThreadFreeLimit)
	root := NewMapContainer(NewHashTrie(reg, cfg.DBMapSlots, reg.Now()))
	pool := NewWorkerPool(
		cfg.ConnThreads, cfg.ConnQueueSize,
		reg, root, cfg.DBMapSlots,
		cfg.TCPParkMinMillis, cfg.TCPParkMaxMillis, cfg.TCPParkStepMillis,
		cfg.Logger, cfg.MetricsCollector,
	)

	return &Server{cfg: cfg, reg: reg, root: root, pool: pool}, nil
}

// Start binds the configured address and launches the worker pool and
// accept loop. A bind failure is returned as ErrCodePortInUse (spec.md §6:
// exit code 1 on EADDRINUSE) and nothing is started.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	acceptPark := NewParker(s.cfg.TCPParkMinMillis, s.cfg.TCPParkMaxMillis, s.cfg.TCPParkStepMillis)
	acc, err := NewAcceptor(s.cfg.Addr(), s.pool, acceptPark, s.cfg.Logger, s.cfg.MetricsCollector)
	if err != nil {
		return err
	}

	s.acc = acc
	s.pool.Start()
	s.acc.Start()
	s.started = true
	return nil
}

// Stop performs the two-phase graceful shutdown folded back from
// original_source/signals.rs: stop accepting first, then drain and join
// every worker. In-flight requests run to completion; nothing is
// preempted (spec.md §5 Cancellation). Calling Stop before Start, or again
// after it has already stopped the server, is a no-op.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.acc.Stop()
	s.pool.Stop()
	s.started = false
}

// Addr returns the bound listener's address. Valid after Start returns nil.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acc == nil {
		return ""
	}
	return s.acc.Addr().String()
}

// SetParkBounds retunes the acceptor's and every worker's adaptive back-off
// bounds in place. Implements hotreload.go's Retunable interface;
// conn-threads, conn-queue-size and db-map-slots stay construction-time
// fixed (spec.md §6).
func (s *Server) SetParkBounds(minMillis, maxMillis, stepMillis int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acc != nil {
		s.acc.park.SetBounds(minMillis, maxMillis, stepMillis)
	}
	for _, w := range s.pool.workers {
		w.park.SetBounds(minMillis, maxMillis, stepMillis)
	}
}

// SetThreadFreeLimit retunes the registry-wide default free-list scan
// threshold that newly-touched participants inherit (§4.B).
func (s *Server) SetThreadFreeLimit(limit int) {
	if limit <= 0 {
		limit = DefaultThreadFreeLimit
	}
	s.reg.freeLim.Store(uint64(limit))
}
