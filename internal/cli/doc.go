// Package cli implements the cobra-based command line for binstage.
//
// binstage has a single command: it takes the binary name as its only
// positional argument, builds it with the configured toolchain and stages
// the artifact. root.go defines the command, global flags and exit code
// handling; build.go wires configuration, toolchain and runner together.
package cli
