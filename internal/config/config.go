// Package config loads the optional YAML file the CLI's --config flag
// points at (SPEC_FULL.md's ambient-stack section), overriding the spec's
// hard-coded sizing constants (§9's "make it a parameter" open questions).
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/internal/vm"
)

// Config holds every knob a run of the pipeline can override. Zero values
// mean "use the spec default" and are filled in by Defaults.
type Config struct {
	SymbolBuckets int  `yaml:"symbol_buckets"`
	MemorySize    int  `yaml:"memory_size"`
	TraceExec     bool `yaml:"trace_exec"`
}

// Defaults returns the spec's hard-coded sizing (100 buckets, 1000 cells).
func Defaults() Config {
	return Config{
		SymbolBuckets: symtab.DefaultBuckets,
		MemorySize:    vm.DefaultMemorySize,
	}
}

// Load reads and merges a YAML config file over the defaults. A missing
// path is not an error: Load with an empty path just returns Defaults().
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SymbolBuckets <= 0 {
		cfg.SymbolBuckets = symtab.DefaultBuckets
	}
	if cfg.MemorySize <= 0 {
		cfg.MemorySize = vm.DefaultMemorySize
	}
	return cfg, nil
}
