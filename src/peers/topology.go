package peers

import "fmt"

// Topology is an adjacency map from node id to the ids of its gossip
// neighbors. It restricts dissemination fan-out; a node only ever gossips
// with its own neighbors.
type Topology map[string][]string

// Validate checks the structural invariants of a topology: no node may list
// itself as a neighbor.
func (t Topology) Validate() error {
	for id, neighbors := range t {
		for _, n := range neighbors {
			if n == id {
				return fmt.Errorf("topology contains self-loop on %s", id)
			}
		}
	}
	return nil
}

// NeighborsOf returns the neighbors of the given node, and whether the
// topology defines an entry for it.
func (t Topology) NeighborsOf(id string) ([]string, bool) {
	neighbors, ok := t[id]
	return neighbors, ok
}

// DefaultTopology builds the fully-connected topology over the peer set:
// every peer is a neighbor of every other peer.
func DefaultTopology(peerSet *PeerSet) Topology {
	topology := Topology{}
	for _, peer := range peerSet.Peers {
		topology[peer.ID] = peerSet.Others(peer.ID)
	}
	return topology
}
