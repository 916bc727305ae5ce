package node

import (
	"math/rand"
	"sync/atomic"
	"time"
)

type timerFactory func(time.Duration) <-chan time.Time

// ControlTimer drives the background gossip rounds. It can be reset with a
// new interval at any time, which is how the node switches between the fast
// and slow gossip cadence.
type ControlTimer struct {
	timerFactory timerFactory
	tickCh       chan struct{}      //sends a signal to the listening process
	resetCh      chan time.Duration //receives instruction to reset the timer
	stopCh       chan struct{}      //receives instruction to stop the timer
	shutdownCh   chan struct{}      //receives instruction to exit the Run loop
	set          int32
}

// NewControlTimer creates a ControlTimer from a timer factory.
func NewControlTimer(factory timerFactory) *ControlTimer {
	return &ControlTimer{
		timerFactory: factory,
		tickCh:       make(chan struct{}),
		resetCh:      make(chan time.Duration),
		stopCh:       make(chan struct{}),
		shutdownCh:   make(chan struct{}),
	}
}

// NewJitterControlTimer creates a ControlTimer whose intervals are extended
// by a random fraction of the base interval, so that the gossip rounds of
// different nodes do not synchronize.
func NewJitterControlTimer() *ControlTimer {
	jitterTimeout := func(min time.Duration) <-chan time.Time {
		if min == 0 {
			return nil
		}
		extra := time.Duration(rand.Int63()) % min
		return time.After(min + extra)
	}
	return NewControlTimer(jitterTimeout)
}

// Run operates the timer until Shutdown. The first interval is init.
func (c *ControlTimer) Run(init time.Duration) {

	setTimer := func(t time.Duration) <-chan time.Time {
		atomic.StoreInt32(&c.set, 1)
		return c.timerFactory(t)
	}

	timer := setTimer(init)
	for {
		select {
		case <-timer:
			select {
			case c.tickCh <- struct{}{}:
			case <-c.shutdownCh:
				return
			}
			atomic.StoreInt32(&c.set, 0)
		case t := <-c.resetCh:
			timer = setTimer(t)
		case <-c.stopCh:
			timer = nil
			atomic.StoreInt32(&c.set, 0)
		case <-c.shutdownCh:
			atomic.StoreInt32(&c.set, 0)
			return
		}
	}
}

// isSet reports whether the timer is currently armed.
func (c *ControlTimer) isSet() bool {
	return atomic.LoadInt32(&c.set) == 1
}

// reset arms the timer with a new interval, unless the timer loop is not
// listening anymore.
func (c *ControlTimer) reset(t time.Duration) {
	select {
	case c.resetCh <- t:
	case <-c.shutdownCh:
	}
}

// Shutdown exits the Run loop.
func (c *ControlTimer) Shutdown() {
	close(c.shutdownCh)
}
