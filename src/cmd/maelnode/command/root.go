package command

import (
	"github.com/roG0d/distributed-challenges/src/config"
	"github.com/spf13/cobra"
)

var (
	_config = config.NewDefaultConfig()
)

// RootCmd is the root command for maelnode
var RootCmd = &cobra.Command{
	Use:              "maelnode",
	Short:            "maelnode gossip broadcast",
	TraverseChildren: true,
}

func init() {
	RootCmd.AddCommand(
		NewRunCmd(),
		NewVersionCmd(),
	)
}
