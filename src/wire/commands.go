package wire

// Message kinds understood by a node. The gossip/gossip_ok pair is internal
// to the cluster; it is never exchanged with the workload driver.
const (
	KindInit        = "init"
	KindInitOk      = "init_ok"
	KindEcho        = "echo"
	KindEchoOk      = "echo_ok"
	KindGenerate    = "generate"
	KindGenerateOk  = "generate_ok"
	KindTopology    = "topology"
	KindTopologyOk  = "topology_ok"
	KindBroadcast   = "broadcast"
	KindBroadcastOk = "broadcast_ok"
	KindRead        = "read"
	KindReadOk      = "read_ok"
	KindGossip      = "gossip"
	KindGossipOk    = "gossip_ok"
	KindError       = "error"
)

// InitBody is the first message a node receives. It assigns the node its
// identity and the roster of all node ids in the cluster.
type InitBody struct {
	BaseBody
	NodeID  string   `json:"node_id"`
	NodeIDs []string `json:"node_ids"`
}

// InitOkBody acknowledges an InitBody.
type InitOkBody struct {
	BaseBody
}

// EchoBody requests that its payload be echoed back.
type EchoBody struct {
	BaseBody
	Echo interface{} `json:"echo"`
}

// EchoOkBody returns the echoed payload.
type EchoOkBody struct {
	BaseBody
	Echo interface{} `json:"echo"`
}

// GenerateBody requests a cluster-wide-unique id.
type GenerateBody struct {
	BaseBody
}

// GenerateOkBody carries a freshly generated id.
type GenerateOkBody struct {
	BaseBody
	ID string `json:"id"`
}

// TopologyBody installs an adjacency map restricting which peers each node
// gossips with.
type TopologyBody struct {
	BaseBody
	Topology map[string][]string `json:"topology"`
}

// TopologyOkBody acknowledges a TopologyBody.
type TopologyOkBody struct {
	BaseBody
}

// BroadcastBody submits one value for cluster-wide dissemination.
type BroadcastBody struct {
	BaseBody
	Message int64 `json:"message"`
}

// BroadcastOkBody acknowledges a BroadcastBody.
type BroadcastOkBody struct {
	BaseBody
}

// ReadBody requests the full set of values this node has seen.
type ReadBody struct {
	BaseBody
}

// ReadOkBody carries a snapshot of all known values.
type ReadOkBody struct {
	BaseBody
	Messages []int64 `json:"messages"`
}

// GossipBody pushes a batch of values to a neighbor. It corresponds to the
// push half of the dissemination protocol: the values are the subset of this
// node's known values that the neighbor has not yet acknowledged.
type GossipBody struct {
	BaseBody
	Values []int64 `json:"values"`
}

// GossipOkBody acknowledges a GossipBody. It echoes the acknowledged values
// so the ack is idempotent and self-describing, independent of request
// correlation.
type GossipOkBody struct {
	BaseBody
	Values []int64 `json:"values"`
}
