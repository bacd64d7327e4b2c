package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/binstage/internal/stage"
	"github.com/shinji-kodama/binstage/internal/toolchain"
)

// fileNames are the project-local config file names, in lookup order.
var fileNames = []string{"binstage.yaml", "binstage.yml", "binstage.jsonc", "binstage.json"}

// userConfigPath returns the per-user config file location. It is a
// variable so tests can point it at a temporary directory.
var userConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "binstage", "config.yaml")
}

// Config is the resolved configuration for a run.
type Config struct {
	// Root is the top-level output directory.
	Root string `yaml:"root" json:"root"`

	// ExeSuffix is the executable extension appended to artifact names.
	ExeSuffix string `yaml:"exe_suffix" json:"exe_suffix"`

	// Toolchain describes the build command.
	Toolchain toolchain.Toolchain `yaml:"toolchain" json:"toolchain"`

	// Path is the file the configuration was read from. Empty when only
	// defaults are in effect.
	Path string `yaml:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:      stage.DefaultRoot,
		ExeSuffix: stage.DefaultExeSuffix(),
		Toolchain: toolchain.Cargo(),
	}
}

// Layout returns the stage layout described by the configuration.
func (c *Config) Layout() stage.Layout {
	return stage.Layout{Root: c.Root, ExeSuffix: c.ExeSuffix}
}

// Validate checks that the fields required to run a build are set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root must not be empty")
	}
	if strings.TrimSpace(c.Toolchain.Program) == "" {
		return fmt.Errorf("toolchain.program must not be empty")
	}
	return nil
}

// Parse decodes data over the defaults. isJSON selects JSONC decoding;
// otherwise data is YAML.
func Parse(data []byte, isJSON bool) (*Config, error) {
	cfg := Default()
	if isJSON {
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path. The format is chosen by the
// file extension: .json and .jsonc are JSONC, anything else is YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	cfg, err := Parse(data, ext == ".json" || ext == ".jsonc")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Find returns the first config file present in dir, then the user config
// file. It returns "" when neither exists.
func Find(dir string) (string, error) {
	candidates := make([]string, 0, len(fileNames)+1)
	for _, name := range fileNames {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	candidates = append(candidates, userConfigPath())

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to inspect %s: %w", path, err)
		}
	}
	return "", nil
}

// Resolve returns the configuration for a run. An explicit path must exist;
// otherwise the lookup order in the package documentation applies and the
// defaults are used when no file is found.
func Resolve(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
