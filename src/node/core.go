package node

import (
	"fmt"
	"sort"

	"github.com/roG0d/distributed-challenges/src/peers"
	"github.com/sirupsen/logrus"
)

// Core is the broadcast state machine. It owns the set of values this node
// has ever seen and, for each gossip neighbor, the subset of those values
// the neighbor has not yet acknowledged.
//
// Core is not safe for concurrent use; the Node serializes access through
// its core lock.
type Core struct {
	id      string
	peerSet *peers.PeerSet

	neighbors []string

	// values is the known-value set. It only ever grows.
	values map[int64]bool
	// order remembers insertion order to produce stable snapshots.
	order []int64

	// pendingAcks maps neighbor id to the values awaiting that neighbor's
	// acknowledgment. Always a subset of values.
	pendingAcks map[string]map[int64]bool

	logger *logrus.Entry
}

// NewCore creates a Core for the given identity. Until a topology is
// installed, every other peer in the roster is a gossip neighbor.
func NewCore(id string, peerSet *peers.PeerSet, logger *logrus.Entry) *Core {
	core := &Core{
		id:          id,
		peerSet:     peerSet,
		values:      make(map[int64]bool),
		pendingAcks: make(map[string]map[int64]bool),
		logger:      logger,
	}

	core.setNeighbors(peerSet.Others(id))

	return core
}

// SetNeighbors installs a new adjacency list for this node, normally from a
// topology request. Pending acks of retained neighbors are preserved; new
// neighbors start with every known value pending, which at worst re-gossips
// values they already have, and the ack path is idempotent.
func (c *Core) SetNeighbors(neighbors []string) error {
	for _, n := range neighbors {
		if n == c.id {
			return fmt.Errorf("topology contains self-loop on %s", c.id)
		}
	}

	c.setNeighbors(neighbors)

	return nil
}

func (c *Core) setNeighbors(neighbors []string) {
	kept := make(map[string]map[int64]bool, len(neighbors))
	for _, n := range neighbors {
		if pending, ok := c.pendingAcks[n]; ok {
			kept[n] = pending
			continue
		}

		pending := make(map[int64]bool, len(c.order))
		for _, v := range c.order {
			pending[v] = true
		}
		kept[n] = pending
	}

	c.neighbors = append([]string{}, neighbors...)
	c.pendingAcks = kept
}

// Neighbors returns a copy of the current adjacency list.
func (c *Core) Neighbors() []string {
	return append([]string{}, c.neighbors...)
}

// AddValue idempotently inserts a value into the known set. When the value
// is new, it becomes pending for every neighbor except the sender, so that
// we do not immediately echo a value back to where it came from. It returns
// whether the value was newly added.
func (c *Core) AddValue(v int64, from string) bool {
	if c.values[v] {
		return false
	}

	c.values[v] = true
	c.order = append(c.order, v)

	for _, n := range c.neighbors {
		if n == from {
			continue
		}
		c.pendingAcks[n][v] = true
	}

	return true
}

// Snapshot returns a copy of the known-value set. Callers never observe
// later mutations through it.
func (c *Core) Snapshot() []int64 {
	return append([]int64{}, c.order...)
}

// PendingFor returns the values awaiting acknowledgment by the given
// neighbor, sorted for deterministic batches.
func (c *Core) PendingFor(neighbor string) []int64 {
	pending := c.pendingAcks[neighbor]
	if len(pending) == 0 {
		return nil
	}

	res := make([]int64, 0, len(pending))
	for v := range pending {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })

	return res
}

// Ack marks values as acknowledged by the given neighbor. Values already
// acknowledged, or never pending, are ignored; acks are idempotent.
func (c *Core) Ack(neighbor string, values []int64) {
	pending, ok := c.pendingAcks[neighbor]
	if !ok {
		return
	}

	for _, v := range values {
		delete(pending, v)
	}
}

// KnownCount returns the cardinality of the known-value set.
func (c *Core) KnownCount() int {
	return len(c.values)
}

// PendingCount returns the total number of (value, neighbor) pairs still
// awaiting acknowledgment.
func (c *Core) PendingCount() int {
	total := 0
	for _, pending := range c.pendingAcks {
		total += len(pending)
	}
	return total
}

// Busy reports whether any neighbor still has unacknowledged values. It
// drives the fast versus slow gossip cadence.
func (c *Core) Busy() bool {
	for _, pending := range c.pendingAcks {
		if len(pending) > 0 {
			return true
		}
	}
	return false
}
