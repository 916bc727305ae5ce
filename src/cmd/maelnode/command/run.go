package command

import (
	"os"

	"github.com/roG0d/distributed-challenges/src/net"
	"github.com/roG0d/distributed-challenges/src/node"
	"github.com/roG0d/distributed-challenges/src/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunCmd returns the command that starts a node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run node",
		PreRunE: loadConfig,
		RunE:    runMaelnode,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runMaelnode(cmd *cobra.Command, args []string) error {
	// Stdout carries the protocol; every log line goes to stderr.
	trans := net.NewStdioTransport(
		os.Stdin,
		os.Stdout,
		_config.BaseLogger().WithField("prefix", "net"),
	)

	n := node.NewNode(_config.NodeConfig(), trans)

	if !_config.NoService {
		serviceServer := service.NewService(
			_config.ServiceAddr,
			n,
			_config.BaseLogger().WithField("prefix", "service"),
		)
		go serviceServer.Serve()
	}

	return n.Run()
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

// AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.LogFile, "Duplicate log output to a file")
	cmd.Flags().String("moniker", _config.Moniker, "Optional name")

	// Service
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for HTTP service")
	cmd.Flags().Bool("no-service", _config.NoService, "Disable the HTTP service")

	// Node configuration
	cmd.Flags().Duration("gossip-interval", _config.GossipInterval, "Time between gossips with values pending")
	cmd.Flags().Duration("slow-gossip-interval", _config.SlowGossipInterval, "Time between gossips when idle")
	cmd.Flags().DurationP("rpc-timeout", "t", _config.RPCTimeout, "Timeout of outbound requests")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config.Logger().WithFields(logrus.Fields{
		"LogLevel":           _config.LogLevel,
		"LogFile":            _config.LogFile,
		"Moniker":            _config.Moniker,
		"NoService":          _config.NoService,
		"ServiceAddr":        _config.ServiceAddr,
		"GossipInterval":     _config.GossipInterval,
		"SlowGossipInterval": _config.SlowGossipInterval,
		"RPCTimeout":         _config.RPCTimeout,
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	return viper.Unmarshal(_config)
}
