package toolchain

import (
	"github.com/shinji-kodama/binstage/internal/model"
)

// Toolchain describes how to invoke a build for a single named binary.
//
// The argument vector for an invocation is:
//
//	<Program> <Subcommand> <BinFlag> <name> [<ReleaseFlag>] [<TargetDirFlag> <root>] [ExtraArgs...]
//
// Empty Subcommand, ReleaseFlag and TargetDirFlag values are omitted. An
// empty BinFlag passes the binary name as a bare positional argument.
type Toolchain struct {
	// Program is the executable looked up on PATH (e.g., "cargo").
	Program string `yaml:"program" json:"program"`

	// Subcommand is the build verb (e.g., "build").
	Subcommand string `yaml:"subcommand" json:"subcommand"`

	// BinFlag selects a single binary target (e.g., "--bin").
	BinFlag string `yaml:"bin_flag" json:"bin_flag"`

	// ReleaseFlag is passed only in release mode (e.g., "--release").
	ReleaseFlag string `yaml:"release_flag" json:"release_flag"`

	// TargetDirFlag points the toolchain at the output root so that
	// artifacts land in <root>/<profile-dir> (e.g., "--target-dir").
	TargetDirFlag string `yaml:"target_dir_flag" json:"target_dir_flag"`

	// ExtraArgs are appended verbatim after the generated arguments.
	ExtraArgs []string `yaml:"extra_args" json:"extra_args"`

	// Env holds additional KEY=VALUE entries for the build process.
	// They are appended to the inherited environment.
	Env []string `yaml:"env" json:"env"`
}

// Cargo returns the default toolchain:
//
//	cargo build --bin <name> [--release] --target-dir <root>
func Cargo() Toolchain {
	return Toolchain{
		Program:       "cargo",
		Subcommand:    "build",
		BinFlag:       "--bin",
		ReleaseFlag:   "--release",
		TargetDirFlag: "--target-dir",
	}
}

// Args returns the arguments (excluding Program) for building inv with
// artifacts written under root.
func (t Toolchain) Args(inv model.Invocation, root string) []string {
	var args []string
	if t.Subcommand != "" {
		args = append(args, t.Subcommand)
	}
	if t.BinFlag != "" {
		args = append(args, t.BinFlag)
	}
	args = append(args, inv.BinaryName)

	// The release flag is the only thing that differs between profiles on
	// the command line; the intermediate directory follows from it.
	if inv.Profile().IsRelease() && t.ReleaseFlag != "" {
		args = append(args, t.ReleaseFlag)
	}
	if t.TargetDirFlag != "" && root != "" {
		args = append(args, t.TargetDirFlag, root)
	}
	args = append(args, t.ExtraArgs...)
	return args
}
