package peers

import "sort"

// PeerSet is the roster of all peers in the cluster.
type PeerSet struct {
	Peers []*Peer          `json:"peers"`
	ByID  map[string]*Peer `json:"-"`
}

// NewPeerSet creates a new PeerSet from a list of Peers.
func NewPeerSet(peers []*Peer) *PeerSet {
	peerSet := &PeerSet{
		ByID: make(map[string]*Peer),
	}

	for _, peer := range peers {
		peerSet.ByID[peer.ID] = peer
	}

	peerSet.Peers = peers

	return peerSet
}

// NewPeerSetFromIDs creates a new PeerSet from a list of node ids, as
// received in the init handshake.
func NewPeerSetFromIDs(ids []string) *PeerSet {
	peers := make([]*Peer, 0, len(ids))
	for _, id := range ids {
		peers = append(peers, NewPeer(id, ""))
	}
	return NewPeerSet(peers)
}

// IDs returns the PeerSet's slice of ids, sorted.
func (peerSet *PeerSet) IDs() []string {
	res := make([]string, 0, len(peerSet.Peers))
	for _, peer := range peerSet.Peers {
		res = append(res, peer.ID)
	}
	sort.Strings(res)
	return res
}

// Len returns the number of Peers in the PeerSet.
func (peerSet *PeerSet) Len() int {
	return len(peerSet.ByID)
}

// Contains reports whether the given id belongs to the PeerSet.
func (peerSet *PeerSet) Contains(id string) bool {
	_, ok := peerSet.ByID[id]
	return ok
}

// Others returns the ids of all peers except the given one.
func (peerSet *PeerSet) Others(self string) []string {
	res := []string{}
	for _, peer := range peerSet.Peers {
		if peer.ID != self {
			res = append(res, peer.ID)
		}
	}
	sort.Strings(res)
	return res
}
