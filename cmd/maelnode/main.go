package main

import (
	"os"

	cmd "github.com/roG0d/distributed-challenges/src/cmd/maelnode/command"
)

func main() {
	rootCmd := cmd.RootCmd

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
