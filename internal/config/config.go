// Package config holds Funcy's runtime configuration: FVM resource limits
// and the standard-library search root, read from the environment and
// optionally overlaid by a project file. The CLI (github.com/mna/mainer)
// deliberately disables its own env-var support, per internal/maincmd's
// "EnvVars: false" precedent, so these are read separately.
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/fy-lang/funcy/lang/fvm"
)

// Config is Funcy's resolved runtime configuration.
type Config struct {
	MaxSteps  int    `env:"FUNCY_MAX_STEPS" envDefault:"10000000" yaml:"maxSteps"`
	MaxStack  int    `env:"FUNCY_MAX_STACK" envDefault:"65536" yaml:"maxStack"`
	StdlibDir string `env:"FUNCY_STDLIB_DIR" yaml:"stdlibDir"`
}

// overlay is the shape of an optional funcy.yaml project file; fields the
// file leaves unset (nil) are left untouched by MergeFile so the env-derived
// Config still wins where the file is silent.
type overlay struct {
	MaxSteps  *int    `yaml:"maxSteps"`
	MaxStack  *int    `yaml:"maxStack"`
	StdlibDir *string `yaml:"stdlibDir"`
}

// Load reads Config from the environment, applying the struct tags' default
// values where a variable is unset.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// MergeFile overlays path's YAML content onto c, if path is non-empty and
// the file exists; a missing file is not an error, since the project file
// is optional.
func (c Config) MergeFile(path string) (Config, error) {
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}

	var ov overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return c, err
	}
	if ov.MaxSteps != nil {
		c.MaxSteps = *ov.MaxSteps
	}
	if ov.MaxStack != nil {
		c.MaxStack = *ov.MaxStack
	}
	if ov.StdlibDir != nil {
		c.StdlibDir = *ov.StdlibDir
	}
	return c, nil
}

// Limits projects c onto the fvm.Limits the FVM is constructed with.
func (c Config) Limits() fvm.Limits {
	return fvm.Limits{MaxSteps: c.MaxSteps, MaxStack: c.MaxStack}
}
