package node

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/roG0d/distributed-challenges/src/ident"
	"github.com/roG0d/distributed-challenges/src/net"
	"github.com/roG0d/distributed-challenges/src/peers"
	"github.com/roG0d/distributed-challenges/src/wire"
	"github.com/sirupsen/logrus"
)

// Node is the runtime of one cluster member. It consumes envelopes from the
// transport, dispatches them to handlers, and runs the background gossip
// rounds.
type Node struct {
	state

	conf   *Config
	logger *logrus.Entry

	// identity is assigned by the init handshake and immutable afterwards.
	idLock  sync.RWMutex
	id      string
	peerSet *peers.PeerSet
	idGen   *ident.Generator

	core     *Core
	coreLock sync.Mutex

	trans net.Transport
	netCh <-chan wire.Envelope

	handlers map[string]HandlerFunc

	pending   *pendingTable
	lastMsgID uint64

	controlTimer *ControlTimer

	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	fatalLock sync.Mutex
	fatalErr  error

	start        time.Time
	gossipRounds uint64
	rpcSent      uint64
	rpcTimeouts  uint64
}

// NewNode is a factory method that returns a Node instance. The node starts
// in the Waiting state; its identity arrives over the wire with the init
// request.
func NewNode(conf *Config, trans net.Transport) *Node {
	logger := conf.Logger.WithField("prefix", "node")
	if conf.Moniker != "" {
		logger = logger.WithField("moniker", conf.Moniker)
	}

	node := &Node{
		conf:         conf,
		logger:       logger,
		trans:        trans,
		netCh:        trans.Consumer(),
		pending:      newPendingTable(),
		controlTimer: NewJitterControlTimer(),
		shutdownCh:   make(chan struct{}),
		start:        time.Now(),
	}

	node.registerHandlers()

	return node
}

// RunAsync calls Run on a separate goroutine.
func (n *Node) RunAsync() {
	go n.Run()
}

// Run invokes the main loop of the node. It returns nil on clean end of
// input, or the fatal error that stopped the node.
func (n *Node) Run() error {
	n.trans.Listen()

	//The ControlTimer drives the background gossip rounds and the expiry of
	//pending requests, concurrently with dispatch.
	go n.controlTimer.Run(n.conf.SlowGossipInterval)

	for {
		select {
		case env, ok := <-n.netCh:
			if !ok {
				n.logger.Debug("Transport consumer closed")
				n.Shutdown()
				return n.fatalError()
			}
			n.goFunc(func() {
				n.dispatch(env)
				n.resetTimer()
			})
		case <-n.controlTimer.tickCh:
			n.goFunc(func() {
				n.expirePending()
				n.gossipRound()
				n.resetTimer()
			})
		case <-n.shutdownCh:
			n.Shutdown()
			return n.fatalError()
		}
	}
}

// dispatch is the sole entry point for inbound envelopes.
func (n *Node) dispatch(env wire.Envelope) {
	base, err := env.Base()
	if err != nil {
		//DecodeError: the line is skipped, the process continues.
		n.logger.WithError(err).Error("Decoding body")
		return
	}

	if base.InReplyTo != 0 {
		if req, ok := n.pending.resolve(base.InReplyTo); ok {
			req.handler(env, nil)
		} else {
			//Duplicate or late reply. An expected, benign race.
			n.logger.WithFields(logrus.Fields{
				"in_reply_to": base.InReplyTo,
				"kind":        base.Type,
			}).Debug("Discarding unmatched reply")
		}
		return
	}

	if n.getState() == Waiting && base.Type != wire.KindInit {
		n.logger.WithField("kind", base.Type).Error("Request before init")
		n.replyError(env, base, wire.ErrCodeCrash, ErrNotInitialized.Error())
		n.requestShutdown(ErrNotInitialized)
		return
	}

	handler, ok := n.handlers[base.Type]
	if !ok {
		n.logger.WithField("kind", base.Type).Error("Unexpected message kind")
		n.replyError(env, base, wire.ErrCodeNotSupported, "unsupported message kind: "+base.Type)
		return
	}

	if err := handler(env); err != nil {
		n.logger.WithError(err).WithField("kind", base.Type).Error("Handling request")
		if isFatal(err) {
			n.requestShutdown(err)
		}
	}
}

func isFatal(err error) bool {
	return err == ErrAlreadyInitialized ||
		err == ErrNotInitialized ||
		err == ident.ErrExhausted
}

// nextMsgID allocates a request id, unique within this node's lifetime.
func (n *Node) nextMsgID() uint64 {
	return atomic.AddUint64(&n.lastMsgID, 1)
}

// ID returns this node's identity, empty before init.
func (n *Node) ID() string {
	n.idLock.RLock()
	defer n.idLock.RUnlock()
	return n.id
}

// Peers returns the cluster roster, nil before init.
func (n *Node) Peers() *peers.PeerSet {
	n.idLock.RLock()
	defer n.idLock.RUnlock()
	return n.peerSet
}

// Send writes a fire-and-forget body to the destination.
func (n *Node) Send(dest string, body wire.Body) error {
	env, err := wire.NewEnvelope(n.ID(), dest, body)
	if err != nil {
		return err
	}
	return n.trans.Send(env)
}

// Call allocates a request id, registers handler to consume the reply with
// the configured timeout, and sends the request. When the send itself fails
// the pending entry is removed and the error returned; nothing was put on
// the wire.
func (n *Node) Call(dest string, body wire.Body, handler ReplyHandler) error {
	id := n.nextMsgID()
	body.SetMsgID(id)

	if handler != nil {
		n.pending.register(&pendingRequest{
			id:       id,
			dest:     dest,
			kind:     body.Kind(),
			handler:  handler,
			deadline: time.Now().Add(n.conf.RPCTimeout),
		})
	}

	if err := n.Send(dest, body); err != nil {
		n.pending.resolve(id)
		return err
	}

	atomic.AddUint64(&n.rpcSent, 1)

	return nil
}

// Reply sends body back to the source of orig, correlated to the request id
// that orig carried.
func (n *Node) Reply(orig wire.Envelope, inReplyTo uint64, body wire.Body) error {
	body.SetMsgID(n.nextMsgID())
	body.SetInReplyTo(inReplyTo)
	return n.Send(orig.Src, body)
}

func (n *Node) replyError(orig wire.Envelope, base wire.BaseBody, code int, text string) {
	if base.MsgID == 0 {
		return
	}
	if err := n.Reply(orig, base.MsgID, wire.NewErrorBody(code, text)); err != nil {
		n.logger.WithError(err).Error("Sending error reply")
	}
}

// expirePending invokes the timeout handler of every request past its
// deadline. Gossip requests treat the timeout as a no-op: their values stay
// pending and are re-sent on the next round.
func (n *Node) expirePending() {
	for _, req := range n.pending.expire(time.Now()) {
		atomic.AddUint64(&n.rpcTimeouts, 1)
		n.logger.WithFields(logrus.Fields{
			"msg_id": req.id,
			"dest":   req.dest,
			"kind":   req.kind,
		}).Debug("Request expired")
		req.handler(wire.Envelope{}, ErrRPCTimeout)
	}
}

// gossipRound sends each neighbor its currently unacknowledged values, one
// batched message per neighbor. It never waits for acks; acknowledgment is
// consumed asynchronously by the reply handler.
func (n *Node) gossipRound() {
	if n.getState() != Running {
		return
	}

	n.coreLock.Lock()
	neighbors := n.core.Neighbors()
	batches := make(map[string][]int64, len(neighbors))
	for _, neighbor := range neighbors {
		if pending := n.core.PendingFor(neighbor); len(pending) > 0 {
			batches[neighbor] = pending
		}
	}
	n.coreLock.Unlock()

	for neighbor, values := range batches {
		neighbor, values := neighbor, values

		body := &wire.GossipBody{
			BaseBody: wire.BaseBody{Type: wire.KindGossip},
			Values:   values,
		}

		err := n.Call(neighbor, body, func(env wire.Envelope, err error) {
			if err != nil {
				//Values stay pending; the next round re-sends them.
				n.logger.WithError(err).WithField("neighbor", neighbor).Debug("Gossip unacknowledged")
				return
			}

			var ack wire.GossipOkBody
			if err := env.DecodeBody(&ack); err != nil {
				n.logger.WithError(err).Error("Decoding gossip ack")
				return
			}

			n.coreLock.Lock()
			n.core.Ack(neighbor, ack.Values)
			n.coreLock.Unlock()
		})

		if err != nil {
			//Transient SendFailure: non-fatal for gossip, retried next round.
			n.logger.WithError(err).WithField("neighbor", neighbor).Debug("Gossip send failed")
			continue
		}

		n.logger.WithFields(logrus.Fields{
			"neighbor": neighbor,
			"values":   len(values),
		}).Debug("Gossip sent")
	}

	atomic.AddUint64(&n.gossipRounds, 1)

	if len(batches) > 0 {
		n.logStats()
	}
}

// resetTimer re-arms the control timer: fast cadence while any neighbor has
// unacknowledged values, slow cadence otherwise.
func (n *Node) resetTimer() {
	if n.controlTimer.isSet() {
		return
	}

	ts := n.conf.SlowGossipInterval

	n.coreLock.Lock()
	busy := n.core != nil && n.core.Busy()
	n.coreLock.Unlock()

	if busy {
		ts = n.conf.GossipInterval
	}

	n.controlTimer.reset(ts)
}

// requestShutdown records the fatal error and asks the run loop to stop.
func (n *Node) requestShutdown(err error) {
	n.fatalLock.Lock()
	if n.fatalErr == nil {
		n.fatalErr = err
	}
	n.fatalLock.Unlock()

	n.shutdownOnce.Do(func() { close(n.shutdownCh) })
}

func (n *Node) fatalError() error {
	n.fatalLock.Lock()
	defer n.fatalLock.Unlock()
	return n.fatalErr
}

// Shutdown shuts down the node.
func (n *Node) Shutdown() {
	if n.getState() != Shutdown {
		n.logger.Debug("Shutdown")

		//Exit any non-shutdown state immediately
		n.setState(Shutdown)

		n.shutdownOnce.Do(func() { close(n.shutdownCh) })

		//Stop and wait for concurrent operations
		n.waitRoutines()

		n.controlTimer.Shutdown()

		//The transport is only closed once all concurrent operations are
		//finished, otherwise they would write through a closed object.
		n.trans.Close()
	}
}

// KnownValues returns a snapshot of the values this node has seen.
func (n *Node) KnownValues() []int64 {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	if n.core == nil {
		return nil
	}
	return n.core.Snapshot()
}

// Neighbors returns the node's current gossip adjacency list.
func (n *Node) Neighbors() []string {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	if n.core == nil {
		return nil
	}
	return n.core.Neighbors()
}

// GetStats returns stats.
func (n *Node) GetStats() map[string]string {
	timeElapsed := time.Since(n.start)

	n.coreLock.Lock()
	known := 0
	pendingAcks := 0
	numNeighbors := 0
	if n.core != nil {
		known = n.core.KnownCount()
		pendingAcks = n.core.PendingCount()
		numNeighbors = len(n.core.neighbors)
	}
	n.coreLock.Unlock()

	numPeers := 0
	if p := n.Peers(); p != nil {
		numPeers = p.Len()
	}

	s := map[string]string{
		"id":            n.ID(),
		"moniker":       n.conf.Moniker,
		"state":         n.getState().String(),
		"known_values":  strconv.Itoa(known),
		"pending_acks":  strconv.Itoa(pendingAcks),
		"num_peers":     strconv.Itoa(numPeers),
		"num_neighbors": strconv.Itoa(numNeighbors),
		"pending_rpcs":  strconv.Itoa(n.pending.count()),
		"gossip_rounds": strconv.FormatUint(atomic.LoadUint64(&n.gossipRounds), 10),
		"rpc_sent":      strconv.FormatUint(atomic.LoadUint64(&n.rpcSent), 10),
		"rpc_timeouts":  strconv.FormatUint(atomic.LoadUint64(&n.rpcTimeouts), 10),
		"uptime":        timeElapsed.String(),
	}
	return s
}

func (n *Node) logStats() {
	stats := n.GetStats()

	n.logger.WithFields(logrus.Fields{
		"known_values":  stats["known_values"],
		"pending_acks":  stats["pending_acks"],
		"pending_rpcs":  stats["pending_rpcs"],
		"gossip_rounds": stats["gossip_rounds"],
		"rpc_sent":      stats["rpc_sent"],
		"rpc_timeouts":  stats["rpc_timeouts"],
		"state":         stats["state"],
	}).Debug("Stats")
}
