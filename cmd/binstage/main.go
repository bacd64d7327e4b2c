// Package main is the entry point for the binstage CLI.
//
// All functionality lives in internal/cli; this file only injects the
// build-time version information and runs the root command.
package main

import (
	"github.com/shinji-kodama/binstage/internal/cli"
)

// version, commit, and date are set at build time via ldflags
// (-X main.version=...).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
