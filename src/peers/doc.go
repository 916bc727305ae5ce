// Package peers defines the concept of a cluster peer and implements
// functions to manage collections of peers.
//
// A peer is one node process in the cluster. Peers are identified by the
// string id assigned by the workload driver during the init handshake, and
// optionally carry a moniker which is a non-unique user-friendly name used
// in logs.
//
// The package also defines the Topology type: an adjacency map restricting
// which peers a node gossips with. Until a topology is installed, every
// other peer is considered a neighbor.
package peers
