// acceptor.go: TCP front-end — accept loop, framing, one-request connections (§4.H)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import (
	"io"
	"net"
	"time"
)

// connTask is the unit of work handed from the acceptor to a worker: one
// freshly accepted connection. Per spec.md §6, a connection carries exactly
// one request/response pair — the worker closes it after replying.
type connTask struct {
	conn net.Conn
}

// acceptPollInterval bounds how long Accept blocks before the loop re-checks
// the shutdown switch. Go's net.Listener has no native WouldBlock accept
// mode; a short deadline is the idiomatic stand-in for the source's
// non-blocking socket plus Parker (see DESIGN.md).
const acceptPollInterval = 50 * time.Millisecond

// Acceptor is the non-blocking TCP front-end of §4.H: it binds host:port,
// accepts connections on a dedicated goroutine, and hands each to a
// WorkerPool.
type Acceptor struct {
	ln      net.Listener
	pool    *WorkerPool
	park    *Parker
	log     Logger
	metrics MetricsCollector

	stop chan struct{}
	done chan struct{}
}

// NewAcceptor binds addr, fail-fast on EADDRINUSE (wrapped as
// ErrCodePortInUse — spec.md §6 exit code 1).
func NewAcceptor(addr string, pool *WorkerPool, park *Parker, log Logger, metrics MetricsCollector) (*Acceptor, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, NewErrPortInUse(addr, err)
	}
	if log == nil {
		log = NoOpLogger{}
	}
	if metrics == nil {
		metrics = NoOpMetricsCollector{}
	}
	return &Acceptor{
		ln:      ln,
		pool:    pool,
		park:    park,
		log:     log,
		metrics: metrics,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Addr reports the listener's bound address.
func (a *Acceptor) Addr() net.Addr { return a.ln.Addr() }

// Start launches the accept loop on its own goroutine.
func (a *Acceptor) Start() { go a.loop() }

func (a *Acceptor) loop() {
	defer close(a.done)
	for {
		select {
		case <-a.stop:
			return
		default:
		}

		a.ln.(interface{ SetDeadline(time.Time) error }).SetDeadline(time.Now().Add(acceptPollInterval))
		conn, err := a.ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				a.park.DoPark(false)
				continue
			}
			select {
			case <-a.stop:
				return
			default:
			}
			a.log.Warn("accept failed", "err", err)
			a.park.DoPark(false)
			continue
		}

		a.park.DoPark(true)
		a.metrics.RecordConnectionAccepted()
		if !a.pool.Dispatch(conn) {
			a.log.Warn("dispatch refused, dropping connection")
			conn.Close()
			a.metrics.RecordConnectionClosed()
		}
	}
}

// Stop closes the listener and waits for the accept loop to exit. It does
// not wait for in-flight connections — that is WorkerPool.Stop's job
// (original_source/signals.rs's two-phase stop: acceptor first, workers
// second).
func (a *Acceptor) Stop() {
	close(a.stop)
	a.ln.Close()
	<-a.done
}

// serveOneRequest reads exactly one framed request from conn, interprets it
// against root, and writes exactly one framed response (§6, §4.H framing).
func serveOneRequest(conn net.Conn, reg *Registry, part ParticipantID, root *Container, mapSlots int) error {
	var hdr [requestHeaderLen]byte
	if _, err := io.ReadFull(conn, hdr[:]); err != nil {
		return err
	}
	req := decodeRequestHeader(hdr[:])

	body := make([]byte, req.Size)
	if req.Size > 0 {
		if _, err := io.ReadFull(conn, body); err != nil {
			return err
		}
	}

	in := &Interp{Root: root, Reg: reg, Part: part, MapSlots: mapSlots}
	respBody := in.Run(body)

	respHdr := encodeResponseHeader(uint64(len(respBody)))
	if _, err := conn.Write(respHdr[:]); err != nil {
		return err
	}
	if len(respBody) > 0 {
		if _, err := conn.Write(respBody); err != nil {
			return err
		}
	}
	return nil
}
