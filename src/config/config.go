// Package config loads the optional TOML run descriptor the host CLI looks
// for next to a source file (common.ConfigFileName). Grounded on the
// teacher's src/mods/load.go open-read-unmarshal-validate shape and its
// tomlFoo-shadow-struct technique, narrowed to a single flat descriptor
// since this toolchain has no package/import system to resolve.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"wisp/src/common"
)

// ExternBinding wires a declared `extern fn` to a host capability. Alert
// marks the builtin alert-routing extern (spec.md §4.4); any other entry
// simply records that the named extern is permitted to be called, with its
// actual implementation supplied in code by the host (src/host).
type ExternBinding struct {
	Name  string `toml:"name"`
	Alert bool   `toml:"alert,omitempty"`
}

// RunConfig is the deserialized contents of a wisp.toml run descriptor.
type RunConfig struct {
	LogLevel    string          `toml:"log-level"`
	TraceOutput string          `toml:"trace-output"` // "none" | "stdout" | a file path
	TraceFormat string          `toml:"trace-format"` // "tree" | "table" | "jsonl"
	Externs     []ExternBinding `toml:"externs,omitempty"`
}

// tomlRunConfig is the TOML-shadow of RunConfig, matching the
// tomlModuleFile/tomlModule wrapping pattern (teacher's src/mods/load.go).
type tomlRunConfig struct {
	Run *RunConfig `toml:"run"`
}

// Default returns the configuration used when no wisp.toml is present:
// verbose logging, no trace output.
func Default() *RunConfig {
	return &RunConfig{
		LogLevel:    "verbose",
		TraceOutput: "none",
		TraceFormat: "tree",
	}
}

// Load reads and validates a wisp.toml at path. If path does not exist,
// Load returns the default configuration rather than an error -- a
// wisp.toml is optional, unlike the teacher's module file.
func Load(path string) (*RunConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	trc := &tomlRunConfig{}
	if err := toml.Unmarshal(buff, trc); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", filepath.Base(path), err)
	}
	if trc.Run == nil {
		return Default(), nil
	}

	if err := validate(trc.Run); err != nil {
		return nil, err
	}
	return trc.Run, nil
}

// LoadNear looks for common.ConfigFileName in the same directory as
// sourcePath and loads it, falling back to defaults if absent.
func LoadNear(sourcePath string) (*RunConfig, error) {
	return Load(filepath.Join(filepath.Dir(sourcePath), common.ConfigFileName))
}

var validLogLevels = map[string]bool{
	"silent": true, "error": true, "warning": true, "verbose": true,
}

var validTraceFormats = map[string]bool{
	"tree": true, "table": true, "jsonl": true,
}

func validate(rc *RunConfig) error {
	if rc.LogLevel == "" {
		rc.LogLevel = "verbose"
	} else if !validLogLevels[rc.LogLevel] {
		return errors.New("log-level must be one of silent, error, warning, verbose")
	}

	if rc.TraceOutput == "" {
		rc.TraceOutput = "none"
	}

	if rc.TraceFormat == "" {
		rc.TraceFormat = "tree"
	} else if !validTraceFormats[rc.TraceFormat] {
		return errors.New("trace-format must be one of tree, table, jsonl")
	}

	return nil
}
