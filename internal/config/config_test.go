package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/binstage/internal/stage"
	"github.com/shinji-kodama/binstage/internal/toolchain"
)

// withUserConfig points the user config lookup at path for the duration
// of the test.
func withUserConfig(t *testing.T, path string) {
	t.Helper()
	orig := userConfigPath
	userConfigPath = func() string { return path }
	t.Cleanup(func() { userConfigPath = orig })
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "build", cfg.Root)
	assert.Equal(t, stage.DefaultExeSuffix(), cfg.ExeSuffix)
	assert.Equal(t, toolchain.Cargo(), cfg.Toolchain)
	assert.Empty(t, cfg.Path)
	assert.NoError(t, cfg.Validate())
}

// TestParseYAMLPartial verifies that unset fields keep their defaults.
func TestParseYAMLPartial(t *testing.T) {
	data := []byte(`
root: out
toolchain:
  extra_args: ["--locked"]
  env:
    - RUSTFLAGS=-Dwarnings
`)
	cfg, err := Parse(data, false)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Root)
	assert.Equal(t, stage.DefaultExeSuffix(), cfg.ExeSuffix)
	assert.Equal(t, "cargo", cfg.Toolchain.Program)
	assert.Equal(t, "--release", cfg.Toolchain.ReleaseFlag)
	assert.Equal(t, []string{"--locked"}, cfg.Toolchain.ExtraArgs)
	assert.Equal(t, []string{"RUSTFLAGS=-Dwarnings"}, cfg.Toolchain.Env)
}

// TestParseYAMLExplicitEmpty verifies that an explicitly empty value
// overrides a default rather than being ignored.
func TestParseYAMLExplicitEmpty(t *testing.T) {
	cfg, err := Parse([]byte(`
exe_suffix: ""
toolchain:
  target_dir_flag: ""
`), false)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.ExeSuffix)
	assert.Equal(t, "", cfg.Toolchain.TargetDirFlag)
	assert.Equal(t, "--bin", cfg.Toolchain.BinFlag)
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
  // Windows layout
  "exe_suffix": ".exe",
  "toolchain": {
    "program": "cross", /* drop-in cargo wrapper */
    "extra_args": ["--target", "x86_64-pc-windows-gnu"],
  },
}`)
	cfg, err := Parse(data, true)
	require.NoError(t, err)

	assert.Equal(t, "build", cfg.Root)
	assert.Equal(t, ".exe", cfg.ExeSuffix)
	assert.Equal(t, "cross", cfg.Toolchain.Program)
	assert.Equal(t, "build", cfg.Toolchain.Subcommand)
	assert.Equal(t, []string{"--target", "x86_64-pc-windows-gnu"}, cfg.Toolchain.ExtraArgs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		isJSON bool
	}{
		{"malformed yaml", "root: [unterminated", false},
		{"malformed json", `{"root": }`, true},
		{"empty root", `root: ""`, false},
		{"empty program", `{"toolchain": {"program": ""}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.isJSON)
			assert.Error(t, err)
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeConfig(t, dir, "a.yml", "root: yaml-out\n")
	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "yaml-out", cfg.Root)
	assert.Equal(t, yamlPath, cfg.Path)

	jsonPath := writeConfig(t, dir, "b.jsonc", `{"root": "json-out" // comment
}`)
	cfg, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "json-out", cfg.Root)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "binstage.yaml"))
	assert.Error(t, err)
}

// TestFindOrder verifies project files are preferred in the documented order
// and the user config is the last resort.
func TestFindOrder(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(t.TempDir(), "binstage", "config.yaml")
	withUserConfig(t, userPath)

	path, err := Find(dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	writeConfig(t, filepath.Dir(userPath), "config.yaml", "root: user\n")
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, userPath, path)

	jsonPath := writeConfig(t, dir, "binstage.json", `{"root": "json"}`)
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, path)

	yamlPath := writeConfig(t, dir, "binstage.yaml", "root: yaml\n")
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, path)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	withUserConfig(t, filepath.Join(t.TempDir(), "absent.yaml"))

	t.Run("defaults when nothing found", func(t *testing.T) {
		cfg, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Resolve(filepath.Join(dir, "nope.yaml"), dir)
		assert.Error(t, err)
	})

	t.Run("project file", func(t *testing.T) {
		writeConfig(t, dir, "binstage.yaml", "root: project\n")
		cfg, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, "project", cfg.Root)
	})

	t.Run("explicit wins over project file", func(t *testing.T) {
		explicit := writeConfig(t, t.TempDir(), "ci.yaml", "root: ci\n")
		cfg, err := Resolve(explicit, dir)
		require.NoError(t, err)
		assert.Equal(t, "ci", cfg.Root)
	})
}

func TestConfigLayout(t *testing.T) {
	cfg := &Config{Root: "out", ExeSuffix: ".exe"}
	assert.Equal(t, stage.Layout{Root: "out", ExeSuffix: ".exe"}, cfg.Layout())
}
