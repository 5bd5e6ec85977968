// Command xanthusd runs a standalone Xanthus server (spec.md §6).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/agilira/xanthus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("xanthusd", flag.ContinueOnError)

	host := fs.String("host", xanthus.DefaultHost, "TCP listen host")
	port := fs.Int("port", xanthus.DefaultPort, "TCP listen port")
	connThreads := fs.Int("conn-threads", xanthus.DefaultConnThreads, "worker pool size")
	connQueueSize := fs.Int("conn-queue-size", xanthus.DefaultConnQueueSize, "per-worker connection queue size")
	dbMapSlots := fs.Int("db-map-slots", xanthus.DefaultDBMapSlots, "root map's initial trie table size")
	parkMin := fs.Int("tcp-park-min", xanthus.DefaultParkMinMillis, "acceptor/worker park floor, milliseconds")
	parkMax := fs.Int("tcp-park-max", xanthus.DefaultParkMaxMillis, "acceptor/worker park ceiling, milliseconds")
	parkStep := fs.Int("tcp-park-seg", xanthus.DefaultParkStepMillis, "acceptor/worker park growth step, milliseconds")
	freeLimit := fs.Int("thread-free-limit", xanthus.DefaultThreadFreeLimit, "per-thread free-list scan threshold")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := stderrLogger{}

	cfg := xanthus.Config{
		Host:              *host,
		Port:              *port,
		ConnThreads:       *connThreads,
		ConnQueueSize:     *connQueueSize,
		DBMapSlots:        *dbMapSlots,
		TCPParkMinMillis:  *parkMin,
		TCPParkMaxMillis:  *parkMax,
		TCPParkStepMillis: *parkStep,
		ThreadFreeLimit:   *freeLimit,
		Logger:            log,
	}

	srv, err := xanthus.NewServer(cfg)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		return 1
	}

	if err := srv.Start(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			log.Error("listen address already in use", "addr", net.JoinHostPort(*host, strconv.Itoa(*port)))
			return 1
		}
		log.Error("failed to start server", "err", err)
		return 1
	}
	log.Info("xanthusd listening", "addr", srv.Addr(), "version", xanthus.Version)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	srv.Stop()
	return 0
}

// stderrLogger is the CLI's xanthus.Logger backend: plain key=value lines
// on stderr. Embedders that want structured logging provide their own
// Logger through xanthus.Config directly; the daemon binary keeps this one
// deliberately simple.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, keyvals ...interface{}) { logLine("DEBUG", msg, keyvals) }
func (stderrLogger) Info(msg string, keyvals ...interface{})  { logLine("INFO", msg, keyvals) }
func (stderrLogger) Warn(msg string, keyvals ...interface{})  { logLine("WARN", msg, keyvals) }
func (stderrLogger) Error(msg string, keyvals ...interface{}) { logLine("ERROR", msg, keyvals) }

func logLine(level, msg string, keyvals []interface{}) {
	fmt.Fprint(os.Stderr, level, " ", msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(os.Stderr, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(os.Stderr)
}
