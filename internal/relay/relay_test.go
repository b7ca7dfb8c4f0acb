package relay

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"gotest.tools/v3/assert"
)

func startRelay(t *testing.T) *Relay {
	t.Helper()
	r, err := NewRelay("127.0.0.1:0")
	assert.NilError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		r.Close()
		<-done
	})
	return r
}

func dial(t *testing.T, r *Relay) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", r.Addr().String())
	assert.NilError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn net.Conn) Message {
	t.Helper()
	assert.NilError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	assert.NilError(t, err)
	var msg Message
	assert.NilError(t, json.Unmarshal(line, &msg))
	return msg
}

func writeFrame(t *testing.T, conn net.Conn, msg Message) {
	t.Helper()
	frame, err := json.Marshal(msg)
	assert.NilError(t, err)
	frame = append(frame, '\n')
	_, err = conn.Write(frame)
	assert.NilError(t, err)
}

func TestRelayForwardsToPeers(t *testing.T) {
	r := startRelay(t)
	editor := dial(t, r)
	surface := dial(t, r)

	// Registration is asynchronous to Dial returning; wait until both
	// clients are in the registry before sending.
	waitForClients(t, r, 2)

	writeFrame(t, editor, Message{Kind: "patch", Data: []byte(`{"offset":3}`)})

	got := readFrame(t, surface)
	assert.Equal(t, got.Kind, "patch")
	assert.Equal(t, got.Client, 1)
	assert.Equal(t, string(got.Data), `{"offset":3}`)
}

func TestRelayDoesNotEchoToSender(t *testing.T) {
	r := startRelay(t)
	editor := dial(t, r)
	surface := dial(t, r)
	waitForClients(t, r, 2)

	writeFrame(t, editor, Message{Kind: "patch"})
	got := readFrame(t, surface)
	assert.Equal(t, got.Kind, "patch")

	// The sender must not receive its own frame back.
	assert.NilError(t, editor.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	buf := make([]byte, 1)
	_, err := editor.Read(buf)
	nerr, ok := err.(net.Error)
	assert.Assert(t, ok && nerr.Timeout(), "expected read timeout, got %v", err)
}

func TestRelayStampsSenderID(t *testing.T) {
	r := startRelay(t)
	first := dial(t, r)
	waitForClients(t, r, 1)
	second := dial(t, r)
	waitForClients(t, r, 2)

	// A forged client id is overwritten with the allocator's.
	writeFrame(t, second, Message{Client: 99, Kind: "reload"})
	got := readFrame(t, first)
	assert.Equal(t, got.Client, 2)
}

func TestRelaySkipsMalformedFrames(t *testing.T) {
	r := startRelay(t)
	editor := dial(t, r)
	surface := dial(t, r)
	waitForClients(t, r, 2)

	_, err := editor.Write([]byte("not json\n"))
	assert.NilError(t, err)
	writeFrame(t, editor, Message{Kind: "patch"})

	got := readFrame(t, surface)
	assert.Equal(t, got.Kind, "patch")
}

func TestRelayDropsDisconnectedClients(t *testing.T) {
	r := startRelay(t)
	editor := dial(t, r)
	surface := dial(t, r)
	waitForClients(t, r, 2)

	surface.Close()
	waitForClients(t, r, 1)

	// Broadcasting into the closed peer must not wedge the relay.
	writeFrame(t, editor, Message{Kind: "patch"})
	waitForClients(t, r, 1)
}

func waitForClients(t *testing.T, r *Relay, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		count := len(r.clients)
		r.mu.Unlock()
		if count == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("registry never reached %d clients", n)
}
