package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/binstage/internal/config"
	"github.com/shinji-kodama/binstage/internal/model"
	"github.com/shinji-kodama/binstage/internal/runner"
	"github.com/shinji-kodama/binstage/internal/toolchain"
)

// buildOptions collects the flag values of the root command.
type buildOptions struct {
	invocation model.Invocation
	configPath string
	root       string
}

// runBuild resolves the configuration, runs the build and prints the result.
func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	wd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "unable to determine working directory", err)
	}

	cfg, err := config.Resolve(opts.configPath, wd)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}
	if cfg.Path != "" {
		VerboseLog("Using config %s", cfg.Path)
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}

	r := runner.New(cfg.Toolchain, cfg.Layout(), newExecutor(cmd))
	r.Logf = VerboseLog

	res, err := r.Run(cmd.Context(), opts.invocation)
	if err != nil {
		return err
	}

	printBuildResult(cmd.OutOrStdout(), res)
	return nil
}

// newExecutor wires the toolchain's output to the command's streams. In JSON
// mode stdout carries only the result object, so the child's stdout goes to
// stderr as well.
func newExecutor(cmd *cobra.Command) *toolchain.ExecExecutor {
	stdout := cmd.OutOrStdout()
	if IsJSONOutput() {
		stdout = cmd.ErrOrStderr()
	}
	return &toolchain.ExecExecutor{Stdout: stdout, Stderr: cmd.ErrOrStderr()}
}

// printBuildResult outputs the staged artifact in text or JSON format.
func printBuildResult(w io.Writer, res *runner.Result) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Staged %s (%s) -> %s\n", res.BinaryName, res.Profile, res.Destination)
}
