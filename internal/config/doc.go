// Package config loads the optional binstage configuration file.
//
// Without a file, binstage uses the cargo toolchain and the "build" output
// root. A file may override any subset of the fields; absent fields keep
// their defaults. Both YAML and JSONC (JSON with comments) are accepted,
// the latter via github.com/tidwall/jsonc.
//
// Lookup order:
//  1. the path given with --config
//  2. binstage.yaml, binstage.yml, binstage.jsonc, binstage.json in the working directory
//  3. $XDG_CONFIG_HOME/binstage/config.yaml
package config
