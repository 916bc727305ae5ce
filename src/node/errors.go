package node

import "errors"

var (
	// ErrAlreadyInitialized is returned when a second init request is
	// received. This is a protocol violation and is fatal.
	ErrAlreadyInitialized = errors.New("node already initialized")

	// ErrNotInitialized is returned when a request other than init arrives
	// before the init handshake completed. This is a protocol violation and
	// is fatal.
	ErrNotInitialized = errors.New("node not initialized")

	// ErrRPCTimeout is passed to a reply handler whose request expired
	// before a matching reply arrived.
	ErrRPCTimeout = errors.New("rpc timed out")
)
