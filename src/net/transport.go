package net

import (
	"errors"

	"github.com/roG0d/distributed-challenges/src/wire"
)

// ErrTransportShutdown is returned when operations on a transport are
// invoked after it's been terminated.
var ErrTransportShutdown = errors.New("transport shutdown")

// Transport provides an interface for a node to exchange envelopes with
// other nodes and with the workload driver.
type Transport interface {

	// Listen starts the transport reading inbound envelopes.
	Listen()

	// Consumer returns a channel from which inbound envelopes are consumed.
	// The channel is closed when the underlying stream reaches its end.
	Consumer() <-chan wire.Envelope

	// LocalAddr is used to return our local address.
	LocalAddr() string

	// Send writes one envelope to its destination.
	Send(env wire.Envelope) error

	// Close permanently closes a transport, stopping any associated
	// goroutines and freeing other resources.
	Close() error
}
