// Package simconfig loads the simulation-level configuration
// (time step, leaf capacity, theta, and the driver's worker/kernel/
// verification knobs) from a YAML file, in the same wrapper-struct-
// with-fallback style the teacher pack's SA solvers use for their own
// config files. Fields the file omits are left at their zero values;
// Default supplies a complete Config.
package simconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VerifyIndex selects the broad-phase backend used to cross-check the
// k-d tree's collision output when VerifyCollisions is set.
type VerifyIndex string

const (
	VerifyIndexRTree    VerifyIndex = "rtree"
	VerifyIndexGeoIndex VerifyIndex = "geoindex"
	VerifyIndexDisabled VerifyIndex = ""
)

// Config holds the parameters needed to build and drive a Tree.
type Config struct {
	TimeStep     float64     `yaml:"time_step"`
	LeafCapacity int         `yaml:"leaf_capacity"`
	Theta        float64     `yaml:"theta"`
	Workers      int         `yaml:"workers"`
	RandomSeed   int64       `yaml:"random_seed"`

	// UseCorrectedKernel selects kdtree.CorrectedKernel over the
	// pinned kdtree.ReferenceKernel.
	UseCorrectedKernel bool `yaml:"use_corrected_kernel"`

	// VerifyCollisions, when VerifyIndex is non-empty, cross-checks
	// each step's collision list against an independent broad-phase
	// index from pkg/broadphase.
	VerifyCollisions bool        `yaml:"verify_collisions"`
	VerifyIndex      VerifyIndex `yaml:"verify_index"`
}

// Default returns a Config with conservative defaults, mirroring the
// teacher pack's DefaultConfig/DefaultSAConfig functions.
func Default() *Config {
	return &Config{
		TimeStep:     0.01,
		LeafCapacity: 3,
		Theta:        0.5,
		Workers:      0,
		RandomSeed:   42,
	}
}

// Load reads Config from a YAML file. The file may either be a bare
// Config document or wrap it under a top-level "params" key; Load
// tries the wrapper form first and falls back to the bare form, the
// same two-shot parse the teacher pack's LoadConfig/LoadSAConfig use.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("simconfig: failed to read config file: %w", err)
	}

	var wrapper struct {
		Params Config `yaml:"params"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err == nil && wrapper.Params != (Config{}) {
		return &wrapper.Params, nil
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("simconfig: failed to parse config: %w", err)
	}
	return &config, nil
}
