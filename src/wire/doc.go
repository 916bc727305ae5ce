// Package wire defines the envelope format exchanged between cluster nodes
// and the workload driver.
//
// An Envelope is one addressed message: a source node id, a destination node
// id, and a body. The body always carries a "type" tag identifying the
// message kind, an optional "msg_id" when the sender expects a reply, and an
// optional "in_reply_to" on replies. The remaining body fields are specific
// to each kind.
//
// Envelopes are encoded as single-line JSON objects. Encoding and decoding
// go through a shared ugorji/go codec handle so that all components agree on
// one canonical representation.
package wire
