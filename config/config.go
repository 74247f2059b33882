// Package config loads process-wide compiler options from an optional
// YAML file via gopkg.in/yaml.v3 — the same library the teacher project
// carries (there as an indirect dependency of its test tooling, here
// promoted to a direct one and actually wired into a config loader, the
// way lookbusy1344-arm_emulator wires its TOML config file into process
// options).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls the parts of compilation and execution that are
// configurable without changing the source text: how many VM steps to
// allow before giving up. Color and Verbose are loaded and carried along,
// but nothing in the compiler, CLI or REPL reads them.
type Options struct {
	MaxSteps int  `yaml:"max_steps"`
	Color    bool `yaml:"color"`
	Verbose  bool `yaml:"verbose"`
}

// Default returns the zero-config defaults: unbounded VM steps, color
// off, verbose off. The core library never requires a config file to
// run.
func Default() Options {
	return Options{MaxSteps: 0, Color: false, Verbose: false}
}

// Load reads and parses a YAML config file at path. A missing file is
// not an error — it returns Default(). A present-but-malformed file
// returns the parse error.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
