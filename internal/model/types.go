package model

import (
	"fmt"
	"strings"
)

// Profile is the build configuration mode. It selects both the release flag
// passed to the toolchain and the intermediate directory that holds the
// freshly built artifact.
type Profile string

const (
	// ProfileDebug is the default, unoptimized profile.
	ProfileDebug Profile = "debug"

	// ProfileRelease is selected by the --release flag.
	ProfileRelease Profile = "release"
)

// ProfileFor returns ProfileRelease when release is set and ProfileDebug otherwise.
func ProfileFor(release bool) Profile {
	if release {
		return ProfileRelease
	}
	return ProfileDebug
}

// String returns the string representation of Profile.
func (p Profile) String() string {
	return string(p)
}

// Dir returns the name of the intermediate directory, relative to the output
// root, into which the toolchain writes artifacts for this profile.
func (p Profile) Dir() string {
	return string(p)
}

// IsRelease reports whether the toolchain should receive its release flag.
func (p Profile) IsRelease() bool {
	return p == ProfileRelease
}

// Invocation holds the two inputs of a single binstage run.
type Invocation struct {
	// BinaryName identifies the toolchain target to build. It also names the
	// artifact file and its destination directory.
	BinaryName string `json:"binaryName"`

	// Release selects ProfileRelease when true.
	Release bool `json:"release"`
}

// Profile returns the build profile selected by the invocation.
func (i Invocation) Profile() Profile {
	return ProfileFor(i.Release)
}

// ValidateBinaryName checks that name can be used both as a toolchain target
// and as a single path element under the output root.
func ValidateBinaryName(name string) error {
	if name == "" {
		return fmt.Errorf("binary name must not be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid binary name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid binary name %q: must not contain path separators", name)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid binary name %q: must not start with '-'", name)
	}
	return nil
}

// ExitCode is the process exit status binstage terminates with.
// A failed build does not use one of the constants below: the toolchain's own
// exit status is propagated verbatim.
type ExitCode int

const (
	// ExitSuccess indicates the artifact was built and staged.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers filesystem failures and a toolchain that
	// could not be started at all.
	ExitGeneralError ExitCode = 1

	// ExitUsage indicates the command line was malformed (for example the
	// binary name is missing). Nothing is run.
	ExitUsage ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
