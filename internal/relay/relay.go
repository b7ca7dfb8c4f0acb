// Package relay forwards JSON-framed messages between the authoring
// environment and the rendering surface over a local socket. The relay
// does not inspect frame contents beyond the envelope; tokenization and
// DOM synchronization happen at the two ends.
package relay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// maxFrameSize bounds one newline-delimited frame.
const maxFrameSize = 1 << 20

// A Message is one frame exchanged between clients. Client is stamped
// by the relay with the sender's id before forwarding, so receivers can
// tell sources apart without trusting the sender.
type Message struct {
	Client int            `json:"client"`
	Kind   string         `json:"kind"`
	Data   jsontext.Value `json:"data,omitempty"`
}

// A Relay accepts local connections and forwards every frame a client
// sends to all other connected clients. The client registry and the id
// allocator are owned by the Relay instance; nothing is process-global,
// so independent relays can coexist and tear down cleanly.
type Relay struct {
	ln net.Listener

	mu      sync.Mutex
	nextID  int
	clients map[int]*client

	wg sync.WaitGroup
}

type client struct {
	id   int
	conn net.Conn
	// wmu serializes frame writes to conn.
	wmu sync.Mutex
}

// NewRelay starts listening on addr ("127.0.0.1:0" picks a free port).
func NewRelay(addr string) (*Relay, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("relay: listen %s: %w", addr, err)
	}
	return &Relay{
		ln:      ln,
		nextID:  1,
		clients: make(map[int]*client),
	}, nil
}

// Addr returns the address the relay is listening on.
func (r *Relay) Addr() net.Addr {
	return r.ln.Addr()
}

// Serve accepts clients until ctx is done or the listener closes. A
// plain Close is not reported as an error.
func (r *Relay) Serve(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.ln.Close()
		case <-done:
		}
	}()

	for {
		conn, err := r.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("relay: accept: %w", err)
		}
		c := r.register(conn)
		r.wg.Add(1)
		go r.serveClient(c)
	}
}

// Close stops the listener, disconnects every client and waits for
// their readers to finish.
func (r *Relay) Close() error {
	err := r.ln.Close()
	r.mu.Lock()
	for _, c := range r.clients {
		c.conn.Close()
	}
	r.mu.Unlock()
	r.wg.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (r *Relay) register(conn net.Conn) *client {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &client{id: r.nextID, conn: conn}
	r.nextID++
	r.clients[c.id] = c
	return c
}

func (r *Relay) drop(c *client) {
	r.mu.Lock()
	delete(r.clients, c.id)
	r.mu.Unlock()
	c.conn.Close()
}

func (r *Relay) serveClient(c *client) {
	defer r.wg.Done()
	defer r.drop(c)

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			// A malformed frame is the sender's problem, not a reason
			// to drop the connection.
			continue
		}
		msg.Client = c.id
		r.broadcast(c.id, msg)
	}
}

// broadcast forwards msg to every registered client except the sender.
// Clients that fail the write are dropped from the registry.
func (r *Relay) broadcast(from int, msg Message) {
	frame, err := json.Marshal(msg)
	if err != nil {
		return
	}
	frame = append(frame, '\n')

	r.mu.Lock()
	peers := make([]*client, 0, len(r.clients))
	for id, c := range r.clients {
		if id != from {
			peers = append(peers, c)
		}
	}
	r.mu.Unlock()

	for _, c := range peers {
		c.wmu.Lock()
		_, err := c.conn.Write(frame)
		c.wmu.Unlock()
		if err != nil {
			r.drop(c)
		}
	}
}
