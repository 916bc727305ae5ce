package config

import (
	"os"
	"time"

	"github.com/rifflock/lfshook"
	"github.com/roG0d/distributed-challenges/src/node"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default configuration values.
const (
	DefaultLogLevel           = "debug"
	DefaultServiceAddr        = "127.0.0.1:8000"
	DefaultGossipInterval     = 200 * time.Millisecond
	DefaultSlowGossipInterval = 1000 * time.Millisecond
	DefaultRPCTimeout         = 1000 * time.Millisecond
)

// Config contains all the configuration properties of a node process. Stdout
// is reserved for the wire protocol, so everything ambient, logs included,
// must stay off it.
type Config struct {
	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, duplicates the log output to a file. The console
	// output on stderr is unaffected.
	LogFile string `mapstructure:"log-file"`

	// NoService disables the HTTP API service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the optional HTTP service.
	ServiceAddr string `mapstructure:"service-listen"`

	// GossipInterval is the frequency of the gossip timer when the node has
	// something to gossip about.
	GossipInterval time.Duration `mapstructure:"gossip-interval"`

	// SlowGossipInterval is the frequency of the gossip timer when the node
	// has nothing to gossip about.
	SlowGossipInterval time.Duration `mapstructure:"slow-gossip-interval"`

	// RPCTimeout is how long outbound requests wait for a reply before their
	// handler is invoked with a timeout.
	RPCTimeout time.Duration `mapstructure:"rpc-timeout"`

	// Moniker defines the friendly name of this node.
	Moniker string `mapstructure:"moniker"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		LogLevel:           DefaultLogLevel,
		ServiceAddr:        DefaultServiceAddr,
		GossipInterval:     DefaultGossipInterval,
		SlowGossipInterval: DefaultSlowGossipInterval,
		RPCTimeout:         DefaultRPCTimeout,
	}

	return config
}

// NodeConfig extracts the node-level configuration.
func (c *Config) NodeConfig() *node.Config {
	return node.NewConfig(
		c.GossipInterval,
		c.SlowGossipInterval,
		c.RPCTimeout,
		c.Moniker,
		c.BaseLogger(),
	)
}

// BaseLogger returns the underlying logrus Logger, building it on first use.
// It writes to stderr; a file hook is attached when LogFile is set.
func (c *Config) BaseLogger() *logrus.Logger {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Out = os.Stderr
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, level := range logrus.AllLevels {
				if level <= c.logger.Level {
					pathMap[level] = c.LogFile
				}
			}
			c.logger.Hooks.Add(lfshook.NewHook(
				pathMap,
				new(prefixed.TextFormatter),
			))
		}
	}
	return c.logger
}

// Logger returns a formatted logrus Entry, with prefix set to "maelnode".
func (c *Config) Logger() *logrus.Entry {
	return c.BaseLogger().WithField("prefix", "maelnode")
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
