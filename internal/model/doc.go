// Package model defines the value types and exit codes for the binstage CLI.
//
// This package contains pure data structures with no external dependencies.
// Every value (Invocation, Profile) lives for a single CLI invocation and is
// never mutated after creation.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
