package stage

import (
	"path/filepath"
	"runtime"

	"github.com/shinji-kodama/binstage/internal/model"
)

// DefaultRoot is the output root used when none is configured.
const DefaultRoot = "build"

// Layout maps a binary name and profile to filesystem paths.
type Layout struct {
	// Root is the top-level output directory.
	Root string

	// ExeSuffix is appended to the binary name to form the artifact file
	// name (".exe" on Windows).
	ExeSuffix string
}

// DefaultExeSuffix returns the executable extension of the host platform.
func DefaultExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// ArtifactName returns the file name of the artifact for name.
func (l Layout) ArtifactName(name string) string {
	return name + l.ExeSuffix
}

// SourcePath returns where the toolchain leaves the artifact for profile.
func (l Layout) SourcePath(name string, profile model.Profile) string {
	return filepath.Join(l.Root, profile.Dir(), l.ArtifactName(name))
}

// DestDir returns the per-binary destination directory.
func (l Layout) DestDir(name string) string {
	return filepath.Join(l.Root, name)
}

// DestPath returns the final location of the staged artifact.
func (l Layout) DestPath(name string) string {
	return filepath.Join(l.DestDir(name), l.ArtifactName(name))
}
