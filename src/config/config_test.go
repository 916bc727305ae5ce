package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestDefaults(t *testing.T) {
	config := NewDefaultConfig()

	if config.LogLevel != "debug" {
		t.Fatalf("default log level should be debug, got %q", config.LogLevel)
	}
	if config.GossipInterval != 200*time.Millisecond {
		t.Fatalf("wrong default gossip interval: %v", config.GossipInterval)
	}
	if config.NoService {
		t.Fatal("service should be enabled by default")
	}
}

func TestNodeConfig(t *testing.T) {
	config := NewDefaultConfig()
	config.GossipInterval = 5 * time.Millisecond
	config.RPCTimeout = 7 * time.Millisecond
	config.Moniker = "tester"

	nodeConfig := config.NodeConfig()

	if nodeConfig.GossipInterval != 5*time.Millisecond {
		t.Fatalf("wrong gossip interval: %v", nodeConfig.GossipInterval)
	}
	if nodeConfig.RPCTimeout != 7*time.Millisecond {
		t.Fatalf("wrong rpc timeout: %v", nodeConfig.RPCTimeout)
	}
	if nodeConfig.Moniker != "tester" {
		t.Fatalf("wrong moniker: %q", nodeConfig.Moniker)
	}
	if nodeConfig.Logger == nil {
		t.Fatal("node config should carry a logger")
	}
}

func TestLogLevel(t *testing.T) {
	if LogLevel("error") != logrus.ErrorLevel {
		t.Fatal("error should parse to ErrorLevel")
	}
	if LogLevel("bogus") != logrus.DebugLevel {
		t.Fatal("unknown levels should default to DebugLevel")
	}
}
