package peers

// Peer is one node in the cluster, identified by the id assigned in the init
// handshake.
type Peer struct {
	ID      string `json:"id"`
	Moniker string `json:"moniker,omitempty"`
}

// NewPeer creates a Peer with the given id and moniker.
func NewPeer(id, moniker string) *Peer {
	return &Peer{
		ID:      id,
		Moniker: moniker,
	}
}

// ExcludePeer is used to exclude a single peer from a list of peers.
func ExcludePeer(peers []*Peer, id string) []*Peer {
	otherPeers := make([]*Peer, 0, len(peers))
	for _, p := range peers {
		if p.ID != id {
			otherPeers = append(otherPeers, p)
		}
	}
	return otherPeers
}
