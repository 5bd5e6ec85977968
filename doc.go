// Package xanthus provides an in-memory, concurrent, schema-less key-value
// store that speaks a compact binary protocol over TCP.
//
// # Overview
//
// Xanthus holds a tree of nested maps whose leaves are scalar values (bool,
// u64, i64). Clients connect, send one framed request containing a batch of
// commands, and receive one framed response; the server then closes the
// connection. Commands navigate the tree by packed key segments and either
// read a subtree, overwrite a leaf or subtree, or apply a fine-grained atomic
// operation (store, swap, compare-and-swap, fetch-add/sub) to a scalar leaf.
//
// Xanthus is Balios's sibling project (the two immortal horses of Achilles):
// where Balios is a single-process cache, Xanthus is a single-process,
// multi-connection store reachable over the wire, built around the same
// lock-free, zero-allocation philosophy.
//
// # Concurrency model
//
//   - The container tree (Container, HashTrie, Slot) supports lock-free
//     lookup/insert and atomic slot replacement from any number of goroutines.
//   - Slot replacement uses epoch-based reclamation (Registry, Slot's free list)
//     instead of reference counting: a retired value is only freed once every
//     known goroutine's last-observed epoch has passed it.
//   - One TCP acceptor goroutine hands each accepted connection to a fixed
//     pool of workers over bounded SPSC ring queues; one worker owns a
//     connection for its entire lifetime.
//
// # Quick start
//
//	cfg := xanthus.DefaultConfig()
//	srv, err := xanthus.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Stop()
//
// # Wire protocol
//
// A request is an 8-byte header (`size uint32`, `flags uint32`, little
// endian) followed by `size` bytes of command-interpreter bytecode. A
// response is an 8-byte header (`size uint64`, little endian) followed by
// `size` bytes of serialized result. See wire.go, keys.go and interp.go.
//
// # Non-goals
//
// No multi-key transactions, no cross-key ordering guarantees beyond
// per-slot atomicity, no replication, no durability, no secondary indexes,
// no client-visible schema.
//
// # Packages
//
//   - github.com/agilira/xanthus: core store and server
//   - github.com/agilira/xanthus/otel: OpenTelemetry metrics collector
//   - github.com/agilira/xanthus/cmd/xanthusd: standalone server binary
//
// Contributions welcome at https://github.com/agilira/xanthus
package xanthus
