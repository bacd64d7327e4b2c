package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinji-kodama/binstage/internal/model"
	"github.com/shinji-kodama/binstage/internal/stage"
	"github.com/shinji-kodama/binstage/internal/toolchain"
)

// Result describes a successfully staged artifact.
type Result struct {
	BinaryName  string        `json:"binaryName"`
	Profile     model.Profile `json:"profile"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Size        int64         `json:"size"`
}

// Runner builds a single binary with a toolchain and stages the artifact.
type Runner struct {
	Toolchain toolchain.Toolchain
	Layout    stage.Layout
	Executor  toolchain.Executor

	// Logf receives progress messages. Nil discards them.
	Logf func(format string, args ...interface{})
}

// New returns a Runner that runs tc through exec.
func New(tc toolchain.Toolchain, layout stage.Layout, exec toolchain.Executor) *Runner {
	return &Runner{
		Toolchain: tc,
		Layout:    layout,
		Executor:  exec,
	}
}

// Run builds inv and copies the artifact to its destination.
//
// Errors are *model.CLIError values:
//   - ExitUsage when the binary name is invalid (nothing is spawned)
//   - the toolchain's own exit code when the build fails
//   - ExitGeneralError when the toolchain cannot be started or staging fails
func (r *Runner) Run(ctx context.Context, inv model.Invocation) (*Result, error) {
	if err := model.ValidateBinaryName(inv.BinaryName); err != nil {
		return nil, model.WrapCLIError(model.ExitUsage, "invalid arguments", err)
	}

	profile := inv.Profile()
	args := r.Toolchain.Args(inv, r.Layout.Root)
	r.logf("Building %q (%s): %s %s", inv.BinaryName, profile, r.Toolchain.Program, strings.Join(args, " "))

	code, err := r.Executor.Run(ctx, r.Toolchain.Program, args, r.Toolchain.Env)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to start build of %q", inv.BinaryName), err)
	}
	if code < 0 {
		// The child was killed by a signal; there is no status to forward.
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("build of %q was terminated by a signal", inv.BinaryName))
	}
	if code != 0 {
		return nil, model.NewCLIError(model.ExitCode(code),
			fmt.Sprintf("build of %q failed with exit status %d", inv.BinaryName, code))
	}

	src := r.Layout.SourcePath(inv.BinaryName, profile)
	destDir := r.Layout.DestDir(inv.BinaryName)
	dst := r.Layout.DestPath(inv.BinaryName)

	if err := stage.EnsureDir(destDir); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to prepare destination", err)
	}

	r.logf("Copying %s -> %s", src, dst)
	n, err := stage.CopyFile(src, dst)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to stage artifact for %q", inv.BinaryName), err)
	}

	return &Result{
		BinaryName:  inv.BinaryName,
		Profile:     profile,
		Source:      src,
		Destination: dst,
		Size:        n,
	}, nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}
