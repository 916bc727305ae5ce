package node

import (
	"sync"
	"sync/atomic"
)

// State captures the lifecycle of a node: Waiting for the init handshake,
// Running, or Shutdown.
type State uint32

const (
	// Waiting is the initial state; only init requests are accepted.
	Waiting State = iota
	// Running is the normal operating state after a successful init.
	Running
	// Shutdown is terminal.
	Shutdown
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Running:
		return "Running"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// WGLIMIT is the maximum number of goroutines that can be in flight through
// state.goFunc. Beyond the limit, work runs synchronously in the caller,
// which applies back-pressure instead of dropping work.
const WGLIMIT = 20

type state struct {
	state   uint32
	wg      sync.WaitGroup
	wgCount int32
}

func (b *state) getState() State {
	return State(atomic.LoadUint32(&b.state))
}

func (b *state) setState(s State) {
	atomic.StoreUint32(&b.state, uint32(s))
}

// goFunc runs f concurrently, tracked by the waitgroup. When too many
// routines are already in flight, f runs in the calling goroutine instead.
func (b *state) goFunc(f func()) {
	if atomic.LoadInt32(&b.wgCount) >= WGLIMIT {
		f()
		return
	}

	b.wg.Add(1)
	atomic.AddInt32(&b.wgCount, 1)
	go func() {
		defer b.wg.Done()
		defer atomic.AddInt32(&b.wgCount, -1)
		f()
	}()
}

func (b *state) waitRoutines() {
	b.wg.Wait()
}
