// Package config holds the tuning knobs of the intersection engine and loads
// them from TOML or YAML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/irfansharif/intersect/internal/pointset"
)

// Equality strategies accepted by Config.Equality.
const (
	EqualityExact   = "exact"
	EqualityEpsilon = "epsilon"
)

// Defaults.
const (
	// Tolerance for classifying near-zero discriminants and distances as
	// exact touches. Integer input makes genuine tangencies evaluate to exact
	// zeros, so this only needs to absorb rounding noise.
	DefaultEpsilon = 1e-10

	// Working-set bound of the point accumulator. Exceeding it triggers a
	// compaction; exceeding it again right after aborts the run.
	DefaultMaxPoints = 5_000_000

	// Coordinate tolerance of the epsilon equality strategy.
	DefaultMergeTolerance = 1e-9
)

// Config configures a run.
type Config struct {
	Epsilon        float64 `toml:"epsilon" yaml:"epsilon"`
	MaxPoints      int     `toml:"max_points" yaml:"max_points"`
	Equality       string  `toml:"equality" yaml:"equality"`
	MergeTolerance float64 `toml:"merge_tolerance" yaml:"merge_tolerance"`
	Workers        int     `toml:"workers" yaml:"workers"`
}

func Default() Config {
	return Config{
		Epsilon:        DefaultEpsilon,
		MaxPoints:      DefaultMaxPoints,
		Equality:       EqualityExact,
		MergeTolerance: DefaultMergeTolerance,
		Workers:        1,
	}
}

// Load reads the file at path over the defaults. The format is picked from
// the extension: .toml, .yaml or .yml. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must be non-negative, got %v", c.Epsilon)
	}
	if c.MaxPoints <= 0 {
		return fmt.Errorf("max_points must be positive, got %d", c.MaxPoints)
	}
	if c.MergeTolerance < 0 {
		return fmt.Errorf("merge_tolerance must be non-negative, got %v", c.MergeTolerance)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Equality != EqualityExact && c.Equality != EqualityEpsilon {
		return fmt.Errorf("equality must be %q or %q, got %q", EqualityExact, EqualityEpsilon, c.Equality)
	}
	return nil
}

// PointEquality returns the accumulator strategy named by c.Equality.
func (c Config) PointEquality() pointset.Equality {
	if c.Equality == EqualityEpsilon {
		return pointset.Within(c.MergeTolerance)
	}
	return pointset.Exact
}
