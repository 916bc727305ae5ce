package net

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/roG0d/distributed-challenges/src/wire"
)

// NewInmemAddr returns a new in-memory addr with
// a randomly generated UUID as the ID.
func NewInmemAddr() string {
	return generateUUID()
}

// generateUUID is used to generate a random UUID.
func generateUUID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to read random bytes: %v", err))
	}

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%12x",
		buf[0:4],
		buf[4:6],
		buf[6:8],
		buf[8:10],
		buf[10:16])
}

// DropFunc decides whether to drop an envelope on a given link. It is used
// by tests to simulate lossy links and partitions.
type DropFunc func(env wire.Envelope) bool

// InmemTransport implements the Transport interface, to allow nodes to be
// tested in-memory without going over real streams. Envelopes sent to a
// connected peer are delivered directly to that peer's consumer channel.
type InmemTransport struct {
	sync.RWMutex
	consumeCh chan wire.Envelope
	localAddr string
	peers     map[string]*InmemTransport
	drop      map[string]DropFunc
	closed    bool
}

// NewInmemTransport is used to initialize a new transport and generates a
// random local address if none is specified.
func NewInmemTransport(addr string) *InmemTransport {
	if addr == "" {
		addr = NewInmemAddr()
	}
	return &InmemTransport{
		consumeCh: make(chan wire.Envelope, 256),
		localAddr: addr,
		peers:     make(map[string]*InmemTransport),
		drop:      make(map[string]DropFunc),
	}
}

// Listen is an empty function as there is no need to defer initialisation
// of the in-memory transport.
func (i *InmemTransport) Listen() {
}

// Consumer implements the Transport interface.
func (i *InmemTransport) Consumer() <-chan wire.Envelope {
	return i.consumeCh
}

// LocalAddr implements the Transport interface.
func (i *InmemTransport) LocalAddr() string {
	return i.localAddr
}

// Send implements the Transport interface. The destination is resolved
// against the connected peers; unknown destinations are an error, dropped
// links swallow the envelope silently, like a lossy network would.
func (i *InmemTransport) Send(env wire.Envelope) error {
	i.RLock()
	closed := i.closed
	peer, ok := i.peers[env.Dest]
	dropFn := i.drop[env.Dest]
	i.RUnlock()

	if closed {
		return ErrTransportShutdown
	}

	if !ok {
		return fmt.Errorf("failed to connect to peer: %v", env.Dest)
	}

	if dropFn != nil && dropFn(env) {
		return nil
	}

	peer.deliver(env)

	return nil
}

func (i *InmemTransport) deliver(env wire.Envelope) {
	i.RLock()
	defer i.RUnlock()

	if i.closed {
		return
	}

	select {
	case i.consumeCh <- env:
	default:
		// Consumer buffer full. Dropping is acceptable here: the inmem
		// transport models an unreliable channel, and the gossip layer is
		// responsible for retrying.
	}
}

// Connect is used to connect this transport to another transport for
// a given peer name. This allows for local routing.
func (i *InmemTransport) Connect(peer string, t Transport) {
	trans := t.(*InmemTransport)
	i.Lock()
	defer i.Unlock()
	i.peers[peer] = trans
}

// Disconnect is used to remove the ability to route to a given peer.
func (i *InmemTransport) Disconnect(peer string) {
	i.Lock()
	defer i.Unlock()
	delete(i.peers, peer)
	delete(i.drop, peer)
}

// DisconnectAll is used to remove all routes to peers.
func (i *InmemTransport) DisconnectAll() {
	i.Lock()
	defer i.Unlock()
	i.peers = make(map[string]*InmemTransport)
	i.drop = make(map[string]DropFunc)
}

// SetDrop installs a drop function on the link to the given peer. A nil
// function removes loss injection for that link.
func (i *InmemTransport) SetDrop(peer string, fn DropFunc) {
	i.Lock()
	defer i.Unlock()
	if fn == nil {
		delete(i.drop, peer)
		return
	}
	i.drop[peer] = fn
}

// Close is used to permanently disable the transport.
func (i *InmemTransport) Close() error {
	i.Lock()
	defer i.Unlock()

	if !i.closed {
		i.closed = true
		i.peers = make(map[string]*InmemTransport)
		i.drop = make(map[string]DropFunc)
		close(i.consumeCh)
	}

	return nil
}
