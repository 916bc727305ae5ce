// Package ident implements generation of cluster-wide-unique ids without
// coordination.
//
// An id is the concatenation of the node's own id, a coarse timestamp, and a
// strictly increasing local counter. The node id is unique in the cluster
// and the counter is unique within the process lifetime, so no two Generate
// calls anywhere in the cluster can collide. The timestamp component only
// aids human-readable ordering; it carries no correctness weight.
package ident

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// ErrExhausted is returned when the local counter wraps around. With a
// 64-bit counter this is practically unreachable; a process observing it
// must not generate further ids.
var ErrExhausted = errors.New("id generator exhausted")

// Generator produces cluster-wide-unique ids on demand, purely locally.
type Generator struct {
	nodeID  string
	counter uint64
}

// NewGenerator creates a Generator bound to the given node id. The node id
// must be the cluster-unique identity assigned in the init handshake.
func NewGenerator(nodeID string) *Generator {
	return &Generator{
		nodeID: nodeID,
	}
}

// Generate returns a new unique id. It is safe for concurrent use;
// concurrent calls on one node return ids differing in the counter
// component.
func (g *Generator) Generate() (string, error) {
	c := atomic.AddUint64(&g.counter, 1)
	if c == math.MaxUint64 {
		return "", ErrExhausted
	}

	return fmt.Sprintf("%s-%d-%d", g.nodeID, time.Now().UnixMilli(), c), nil
}
