package node

import (
	"testing"
	"time"

	"github.com/roG0d/distributed-challenges/src/common"
	"github.com/sirupsen/logrus"
)

// Config holds the tunables of the node runtime. None of the durations are
// load-bearing for correctness, only for convergence latency.
type Config struct {
	// GossipInterval is the frequency of the gossip timer when the node has
	// unacknowledged values to push.
	GossipInterval time.Duration `mapstructure:"gossip-interval"`

	// SlowGossipInterval is the frequency of the gossip timer when there is
	// nothing pending for any neighbor.
	SlowGossipInterval time.Duration `mapstructure:"slow-gossip-interval"`

	// RPCTimeout is how long an outbound request waits for a matching reply
	// before its handler is invoked with a timeout.
	RPCTimeout time.Duration `mapstructure:"rpc-timeout"`

	// Moniker is the friendly name of this node, used in logs only.
	Moniker string `mapstructure:"moniker"`

	Logger *logrus.Logger
}

// NewConfig builds a Config from explicit values.
func NewConfig(gossip time.Duration,
	slowGossip time.Duration,
	rpcTimeout time.Duration,
	moniker string,
	logger *logrus.Logger) *Config {

	return &Config{
		GossipInterval:     gossip,
		SlowGossipInterval: slowGossip,
		RPCTimeout:         rpcTimeout,
		Moniker:            moniker,
		Logger:             logger,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.DebugLevel

	return &Config{
		GossipInterval:     200 * time.Millisecond,
		SlowGossipInterval: 1000 * time.Millisecond,
		RPCTimeout:         1000 * time.Millisecond,
		Logger:             logger,
	}
}

// TestConfig returns a Config with short intervals and a logger that writes
// through the test runner.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.GossipInterval = 20 * time.Millisecond
	config.SlowGossipInterval = 50 * time.Millisecond
	config.RPCTimeout = 200 * time.Millisecond
	config.Logger = common.NewTestLogger(t)
	return config
}
