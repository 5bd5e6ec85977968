// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv
}

func TestServerStartStopIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	assert.NotEmpty(t, srv.Addr())

	// Calling Start again while already started must be a no-op, not an error.
	require.NoError(t, srv.Start())

	srv.Stop()
	// Calling Stop again after already stopped must not panic or block.
	srv.Stop()
}

func TestServerEndToEndSetAndReturn(t *testing.T) {
	srv := newTestServer(t)

	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)

	setReq := buildSetKVRequest([]string{"session", "42", "active"}, NewABool(true))
	sendRequest(t, conn, setReq)
	readResponse(t, conn) // discard; SET_KV success emits nothing
	conn.Close()

	conn2, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer conn2.Close()

	getReq := buildReturnKVRequest([]string{"session", "42", "active"})
	sendRequest(t, conn2, getReq)
	resp := readResponse(t, conn2)

	c := newCursor(resp)
	v, ok := readValue(c)
	require.True(t, ok)
	assert.True(t, v.AsBool())
}

func TestServerSetParkBoundsAppliesToAcceptorAndWorkers(t *testing.T) {
	srv := newTestServer(t)
	srv.SetParkBounds(5, 50, 5)

	assert.Equal(t, 5, srv.acc.park.minMillis)
	for _, w := range srv.pool.workers {
		assert.Equal(t, 5, w.park.minMillis)
	}
}

func TestServerSetThreadFreeLimit(t *testing.T) {
	srv := newTestServer(t)
	srv.SetThreadFreeLimit(11)
	assert.Equal(t, uint64(11), srv.reg.FreeLimit())

	srv.SetThreadFreeLimit(0)
	assert.Equal(t, uint64(DefaultThreadFreeLimit), srv.reg.FreeLimit())
}

func sendRequest(t *testing.T, conn net.Conn, body []byte) {
	t.Helper()
	hdr := encodeHeaderForTest(uint32(len(body)))
	_, err := conn.Write(hdr[:])
	require.NoError(t, err)
	if len(body) > 0 {
		_, err = conn.Write(body)
		require.NoError(t, err)
	}
}

func readResponse(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	hdr := make([]byte, responseHeaderLen)
	_, err := readFullTest(conn, hdr)
	require.NoError(t, err)
	size := decodeU64Test(hdr)
	if size == 0 {
		return nil
	}
	body := make([]byte, size)
	_, err = readFullTest(conn, body)
	require.NoError(t, err)
	return body
}
