package node

import (
	"sync"
	"time"

	"github.com/roG0d/distributed-challenges/src/wire"
)

// ReplyHandler consumes the reply to an outbound request. On timeout it is
// invoked with a zero envelope and ErrRPCTimeout.
type ReplyHandler func(env wire.Envelope, err error)

// pendingRequest is one outstanding request issued by this node.
type pendingRequest struct {
	id       uint64
	dest     string
	kind     string
	handler  ReplyHandler
	deadline time.Time
}

// pendingTable tracks outstanding requests and matches replies to the
// request that triggered them. resolve and expire may race on the same id:
// whichever removes the entry first wins, the other is a no-op.
type pendingTable struct {
	sync.Mutex
	requests map[uint64]*pendingRequest
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		requests: make(map[uint64]*pendingRequest),
	}
}

// register records an outstanding request.
func (p *pendingTable) register(req *pendingRequest) {
	p.Lock()
	defer p.Unlock()
	p.requests[req.id] = req
}

// resolve removes and returns the request with the given id. It returns
// false when the id is unknown, which happens for duplicate, late, or
// already-expired replies.
func (p *pendingTable) resolve(id uint64) (*pendingRequest, bool) {
	p.Lock()
	defer p.Unlock()

	req, ok := p.requests[id]
	if !ok {
		return nil, false
	}

	delete(p.requests, id)

	return req, true
}

// expire removes and returns all requests whose deadline has passed. The
// caller invokes the timeout handlers outside the table's lock.
func (p *pendingTable) expire(now time.Time) []*pendingRequest {
	p.Lock()
	defer p.Unlock()

	var expired []*pendingRequest
	for id, req := range p.requests {
		if now.After(req.deadline) {
			expired = append(expired, req)
			delete(p.requests, id)
		}
	}

	return expired
}

// count returns the number of outstanding requests.
func (p *pendingTable) count() int {
	p.Lock()
	defer p.Unlock()
	return len(p.requests)
}
