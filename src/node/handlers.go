package node

import (
	"github.com/roG0d/distributed-challenges/src/ident"
	"github.com/roG0d/distributed-challenges/src/peers"
	"github.com/roG0d/distributed-challenges/src/wire"
	"github.com/sirupsen/logrus"
)

// HandlerFunc handles one inbound request envelope. Handlers may reply, send
// further envelopes, or mutate the broadcast Core under the core lock.
type HandlerFunc func(env wire.Envelope) error

// registerHandlers installs the built-in message kinds. The registry is
// fixed at startup; there is no dynamic registration at runtime.
func (n *Node) registerHandlers() {
	n.handlers = map[string]HandlerFunc{
		wire.KindInit:      n.handleInit,
		wire.KindEcho:      n.handleEcho,
		wire.KindGenerate:  n.handleGenerate,
		wire.KindTopology:  n.handleTopology,
		wire.KindBroadcast: n.handleBroadcast,
		wire.KindRead:      n.handleRead,
		wire.KindGossip:    n.handleGossip,
	}
}

// handleInit captures the node's identity and the cluster roster. It must be
// the first request; a second init is a fatal protocol violation.
func (n *Node) handleInit(env wire.Envelope) error {
	var body wire.InitBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	if n.getState() != Waiting {
		n.replyError(env, body.BaseBody, wire.ErrCodeCrash, ErrAlreadyInitialized.Error())
		return ErrAlreadyInitialized
	}

	peerSet := peers.NewPeerSetFromIDs(body.NodeIDs)
	if !peerSet.Contains(body.NodeID) {
		peerSet = peers.NewPeerSet(append(peerSet.Peers, peers.NewPeer(body.NodeID, n.conf.Moniker)))
	}

	n.idLock.Lock()
	n.id = body.NodeID
	n.peerSet = peerSet
	n.idGen = ident.NewGenerator(body.NodeID)
	n.idLock.Unlock()

	n.coreLock.Lock()
	n.core = NewCore(body.NodeID, peerSet, n.logger)
	n.coreLock.Unlock()

	n.setState(Running)

	n.logger.WithFields(logrus.Fields{
		"this_id":   body.NodeID,
		"num_peers": peerSet.Len(),
		"peers":     peerSet.IDs(),
	}).Debug("Node initialized")

	return n.Reply(env, body.MsgID, &wire.InitOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindInitOk},
	})
}

// handleEcho echoes the payload back to the sender.
func (n *Node) handleEcho(env wire.Envelope) error {
	var body wire.EchoBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	return n.Reply(env, body.MsgID, &wire.EchoOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindEchoOk},
		Echo:     body.Echo,
	})
}

// handleGenerate replies with a fresh cluster-wide-unique id.
func (n *Node) handleGenerate(env wire.Envelope) error {
	var body wire.GenerateBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	n.idLock.RLock()
	gen := n.idGen
	n.idLock.RUnlock()

	id, err := gen.Generate()
	if err != nil {
		n.replyError(env, body.BaseBody, wire.ErrCodeCrash, err.Error())
		return err
	}

	return n.Reply(env, body.MsgID, &wire.GenerateOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindGenerateOk},
		ID:       id,
	})
}

// handleTopology installs a custom adjacency map. Only this node's own entry
// is retained; dissemination to other nodes is their own business.
func (n *Node) handleTopology(env wire.Envelope) error {
	var body wire.TopologyBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	topology := peers.Topology(body.Topology)
	if err := topology.Validate(); err != nil {
		n.replyError(env, body.BaseBody, wire.ErrCodeCrash, err.Error())
		return nil
	}

	neighbors, ok := topology.NeighborsOf(n.ID())
	if !ok {
		//Without an entry for this node, the default all-peers adjacency
		//stays in place.
		n.logger.Warn("Topology has no entry for this node")
		return n.Reply(env, body.MsgID, &wire.TopologyOkBody{
			BaseBody: wire.BaseBody{Type: wire.KindTopologyOk},
		})
	}

	n.coreLock.Lock()
	err := n.core.SetNeighbors(neighbors)
	n.coreLock.Unlock()

	if err != nil {
		n.replyError(env, body.BaseBody, wire.ErrCodeCrash, err.Error())
		return nil
	}

	n.logger.WithField("neighbors", neighbors).Debug("Topology installed")

	return n.Reply(env, body.MsgID, &wire.TopologyOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindTopologyOk},
	})
}

// handleBroadcast accepts one value for dissemination. The insert is
// idempotent; re-delivered broadcasts acknowledge without growing the set.
func (n *Node) handleBroadcast(env wire.Envelope) error {
	var body wire.BroadcastBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	n.coreLock.Lock()
	added := n.core.AddValue(body.Message, env.Src)
	n.coreLock.Unlock()

	n.logger.WithFields(logrus.Fields{
		"value": body.Message,
		"from":  env.Src,
		"new":   added,
	}).Debug("Broadcast received")

	if body.MsgID == 0 {
		return nil
	}

	return n.Reply(env, body.MsgID, &wire.BroadcastOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindBroadcastOk},
	})
}

// handleRead replies with a snapshot of every value this node has seen.
func (n *Node) handleRead(env wire.Envelope) error {
	var body wire.ReadBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	n.coreLock.Lock()
	snapshot := n.core.Snapshot()
	n.coreLock.Unlock()

	return n.Reply(env, body.MsgID, &wire.ReadOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindReadOk},
		Messages: snapshot,
	})
}

// handleGossip merges a batch of values pushed by a peer and acknowledges
// exactly the values received, so the sender can clear its pending state.
func (n *Node) handleGossip(env wire.Envelope) error {
	var body wire.GossipBody
	if err := env.DecodeBody(&body); err != nil {
		return err
	}

	n.coreLock.Lock()
	added := 0
	for _, v := range body.Values {
		if n.core.AddValue(v, env.Src) {
			added++
		}
	}
	n.coreLock.Unlock()

	n.logger.WithFields(logrus.Fields{
		"from":   env.Src,
		"values": len(body.Values),
		"new":    added,
	}).Debug("Gossip received")

	if body.MsgID == 0 {
		return nil
	}

	return n.Reply(env, body.MsgID, &wire.GossipOkBody{
		BaseBody: wire.BaseBody{Type: wire.KindGossipOk},
		Values:   body.Values,
	})
}
