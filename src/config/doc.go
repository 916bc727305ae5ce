// Package config defines the configuration for a node process.
//
// Regardless of how the node is started, directly from Go code or as a
// standalone process from the command line, it uses the Config object defined
// in this package to store and forward configuration options. There is no
// configuration directory: identity and topology arrive over the wire, so the
// process only carries tunables like log level, timer intervals, and the
// optional HTTP service address.
package config
