package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/binstage/internal/model"
)

// Global flag variables bound to persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables progress output on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:   "binstage <binary-name>",
		Short: "Build one binary and stage it into a per-binary output directory",
		Long: `binstage runs the toolchain build for a single binary, then copies the
artifact from <root>/<profile>/ into <root>/<binary-name>/.

The debug profile is used unless --release is given. If the build exits
non-zero, binstage exits with the same status and nothing is copied.

Examples:
  binstage server
  binstage server --release
  binstage --config ci.yaml --json server`,

		Args: requireBinaryName,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			opts.invocation.BinaryName = args[0]
			return runBuild(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().BoolVarP(&opts.invocation.Release, "release", "r", false, "Build with the release profile")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a binstage config file (YAML or JSONC)")
	rootCmd.Flags().StringVar(&opts.root, "root", "", "Override the output root directory")

	// Malformed flags are usage errors, same as a missing binary name.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitUsage, "invalid arguments", err)
	})

	return rootCmd
}

// requireBinaryName is the positional argument validator. It rejects the
// invocation before configuration is loaded or anything is spawned.
func requireBinaryName(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return model.NewCLIError(model.ExitUsage,
			"binary name is required (usage: binstage <binary-name> [--release])")
	case len(args) > 1:
		return model.NewCLIError(model.ExitUsage,
			fmt.Sprintf("expected exactly one binary name, got %d", len(args)))
	}
	if err := model.ValidateBinaryName(args[0]); err != nil {
		return model.WrapCLIError(model.ExitUsage, "invalid arguments", err)
	}
	return nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
		} else {
			printError(err.Error(), nil)
		}
		os.Exit(int(ExitCodeFor(err)))
	}
}

// ExitCodeFor returns the process exit status for an error returned by the
// root command. A failed build maps to the toolchain's own status.
func ExitCodeFor(err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
