// Package net implements the transports over which a node exchanges
// envelopes with its peers and with the workload driver.
//
// This package contains two implementations of the Transport interface:
//
// - Stdio: line-framed JSON envelopes over standard input and output. This
// is the transport used in production: the driver writes one envelope per
// line to the node's stdin and reads replies from its stdout.
//
// - Inmem: in-memory transport used only for testing. Transports are
// connected to each other explicitly, which allows tests to build small
// clusters, partition them, and inject message loss.
//
// A Transport decodes inbound envelopes and delivers them on the Consumer
// channel. The channel is closed when the underlying stream ends, which is
// the node's signal to shut down cleanly.
package net
