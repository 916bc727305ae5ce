package peers

import (
	"reflect"
	"testing"
)

func TestPeerSet(t *testing.T) {
	peerSet := NewPeerSetFromIDs([]string{"n2", "n0", "n1"})

	if peerSet.Len() != 3 {
		t.Fatalf("peer set should contain 3 peers, not %d", peerSet.Len())
	}

	if !peerSet.Contains("n1") {
		t.Fatal("peer set should contain n1")
	}

	if peerSet.Contains("n9") {
		t.Fatal("peer set should not contain n9")
	}

	others := peerSet.Others("n1")
	if !reflect.DeepEqual(others, []string{"n0", "n2"}) {
		t.Fatalf("Others(n1) should be [n0 n2], not %v", others)
	}
}

func TestExcludePeer(t *testing.T) {
	peerList := []*Peer{
		NewPeer("n0", "alice"),
		NewPeer("n1", "bob"),
		NewPeer("n2", ""),
	}

	kept := ExcludePeer(peerList, "n1")
	if len(kept) != 2 {
		t.Fatalf("should keep 2 peers, not %d", len(kept))
	}
	for _, p := range kept {
		if p.ID == "n1" {
			t.Fatal("n1 should be excluded")
		}
	}
}

func TestTopologyValidate(t *testing.T) {
	good := Topology{
		"n0": {"n1", "n2"},
		"n1": {"n0"},
		"n2": {"n0"},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("err: %v", err)
	}

	bad := Topology{
		"n0": {"n1", "n0"},
	}
	if err := bad.Validate(); err == nil {
		t.Fatal("self-loop should not validate")
	}
}

func TestDefaultTopology(t *testing.T) {
	peerSet := NewPeerSetFromIDs([]string{"n0", "n1", "n2"})

	topology := DefaultTopology(peerSet)
	if err := topology.Validate(); err != nil {
		t.Fatalf("err: %v", err)
	}

	neighbors, ok := topology.NeighborsOf("n1")
	if !ok {
		t.Fatal("n1 should have an entry")
	}
	if !reflect.DeepEqual(neighbors, []string{"n0", "n2"}) {
		t.Fatalf("n1 neighbors should be [n0 n2], not %v", neighbors)
	}
}
