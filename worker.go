// worker.go: fixed-size worker pool, one dedicated goroutine per queue (§4.G)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import (
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// assignRetrySweeps and assignRetryPause are assign_retried's defaults
// (§4.G): up to this many full round-robin sweeps across the pool, parking
// this long between sweeps, before a dispatch is given up on.
const (
	assignRetrySweeps = 3
	assignRetryPause  = time.Millisecond
)

// worker owns one bounded SPSC queue and the goroutine that drains it. The
// acceptor is the queue's sole producer; this worker is its sole consumer.
type worker struct {
	index     int
	queue     *ring
	part      ParticipantID
	park      *Parker
	switchOff atomic.Bool
	pool      *WorkerPool
}

// WorkerPool is the fixed-at-construction ring of workers from spec.md
// §4.G: N workers, each a dedicated goroutine pinned to one bounded queue;
// Dispatch round-robins across them.
type WorkerPool struct {
	workers  []*worker
	next     atomic.Uint64
	reg      *Registry
	root     *Container
	mapSlots int
	log      Logger
	metrics  MetricsCollector
	wg       sync.WaitGroup
}

// NewWorkerPool creates n workers, each with a queue of queueSize entries,
// interpreting requests against root (the server's root Map container).
func NewWorkerPool(n, queueSize int, reg *Registry, root *Container, mapSlots, parkMin, parkMax, parkStep int, log Logger, metrics MetricsCollector) *WorkerPool {
	if log == nil {
		log = NoOpLogger{}
	}
	if metrics == nil {
		metrics = NoOpMetricsCollector{}
	}
	p := &WorkerPool{reg: reg, root: root, mapSlots: mapSlots, log: log, metrics: metrics}
	p.workers = make([]*worker, n)
	for i := 0; i < n; i++ {
		p.workers[i] = &worker{
			index: i,
			queue: newRing(queueSize),
			part:  reg.Join(),
			park:  NewParker(parkMin, parkMax, parkStep),
			pool:  p,
		}
	}
	return p
}

// Start launches every worker's goroutine.
func (p *WorkerPool) Start() {
	for _, w := range p.workers {
		p.wg.Add(1)
		go w.run()
	}
}

// Dispatch hands conn to a worker via assignRetried's default policy.
func (p *WorkerPool) Dispatch(c net.Conn) bool {
	return p.assignRetried(&connTask{conn: c}, assignRetrySweeps, assignRetryPause)
}

// assignRetried tries times full round-robin sweeps across the pool,
// parking pause between sweeps, returning whether some worker accepted
// task.
func (p *WorkerPool) assignRetried(task *connTask, times int, pause time.Duration) bool {
	n := len(p.workers)
	for attempt := 0; attempt < times; attempt++ {
		for i := 0; i < n; i++ {
			idx := (p.next.Add(1) - 1) % uint64(n)
			if p.workers[idx].queue.push(task) {
				return true
			}
		}
		time.Sleep(pause)
	}
	return false
}

// Stop sets every worker's switch, so each drains its queue and exits on
// its next wake-up, then waits for all of them to finish
// (original_source/signals.rs's two-phase stop, second phase).
func (p *WorkerPool) Stop() {
	for _, w := range p.workers {
		w.switchOff.Store(true)
	}
	p.wg.Wait()
}

func (w *worker) run() {
	defer w.pool.wg.Done()
	for {
		task, ok := w.queue.pop()
		if ok {
			w.handle(task)
			w.park.DoPark(true)
			continue
		}
		if w.switchOff.Load() {
			for {
				task, ok := w.queue.pop()
				if !ok {
					return
				}
				w.handle(task)
			}
		}
		w.pool.metrics.RecordQueueDepth(w.index, w.queue.len())
		w.park.DoPark(false)
	}
}

func (w *worker) handle(task *connTask) {
	defer task.conn.Close()
	defer w.pool.metrics.RecordConnectionClosed()

	started := w.pool.reg.Now()
	if err := serveOneRequest(task.conn, w.pool.reg, w.part, w.pool.root, w.pool.mapSlots); err != nil {
		w.pool.log.Warn("request failed", "err", err, "worker", w.index)
		return
	}
	w.pool.metrics.RecordRequestLatency(w.pool.reg.Now() - started)
}
