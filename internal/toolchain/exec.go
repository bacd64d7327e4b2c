package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Executor runs an external process to completion.
//
// Run returns the process exit code. A non-zero exit is not an error: err is
// reserved for failures to start the process at all (for example when the
// program is not on PATH), in which case exitCode is -1.
type Executor interface {
	Run(ctx context.Context, program string, args []string, env []string) (exitCode int, err error)
}

// ExecExecutor runs processes via os/exec, synchronously and without a
// timeout. The child inherits stdin and writes to Stdout/Stderr.
type ExecExecutor struct {
	// Dir is the working directory of the child. Empty means the current
	// working directory.
	Dir string

	// Stdout and Stderr receive the child's output. Nil means os.Stdout and
	// os.Stderr respectively.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes program with args and returns its exit code.
func (e *ExecExecutor) Run(ctx context.Context, program string, args []string, env []string) (int, error) {
	// #nosec G204 - program and args come from the user's own build configuration
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = e.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	// The process started and exited non-zero: report the code, not an error.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("failed to run %s: %w", program, err)
}
