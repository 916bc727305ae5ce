// Package node implements the reactive component of a cluster node.
//
// This is the part that consumes envelopes from the transport, dispatches
// them to registered handlers, and runs the gossip routines that disseminate
// broadcast values to the rest of the cluster.
//
// Dispatch
//
// The runtime owns a single consume loop. Every inbound envelope is first
// checked against the table of pending requests: if its in_reply_to matches
// an outstanding request, the envelope is routed to that request's reply
// handler and the entry is removed. Unmatched replies are discarded
// silently; a duplicate or late reply is an expected, benign race. Fresh
// requests are dispatched through the handler registry keyed on the body's
// kind. A request of unknown kind is answered with a "not supported" error
// body rather than crashing the process.
//
// Gossip
//
// The Core keeps the set of all values this node has ever seen, and, per
// gossip neighbor, the subset of those values that the neighbor has not yet
// acknowledged. A control timer periodically triggers a gossip round: for
// each neighbor with unacknowledged values, the node sends one batched
// gossip message and registers a reply handler that marks the values as
// acknowledged when the neighbor's gossip_ok arrives. Values that are not
// acknowledged, because the message or its ack was lost, simply stay in the
// neighbor's pending set and are re-sent verbatim on the next round. There
// is no retry limit; an unreachable neighbor delays only its own
// convergence and never blocks dissemination towards other neighbors.
//
// The timer runs concurrently with dispatch, so the known-value set and the
// per-neighbor ack state are guarded by a single lock, and every state
// transition is applied as one atomic critical section.
package node
