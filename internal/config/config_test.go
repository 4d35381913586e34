package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/intersect/internal/pointset"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, pointset.Exact, cfg.PointEquality())
	assert.Equal(t, 5_000_000, cfg.MaxPoints)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "engine.toml", `
epsilon = 1e-8
max_points = 1000
equality = "epsilon"
merge_tolerance = 1e-6
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-8, cfg.Epsilon)
	assert.Equal(t, 1000, cfg.MaxPoints)
	assert.Equal(t, EqualityEpsilon, cfg.Equality)
	assert.Equal(t, 1, cfg.Workers, "unset fields keep their defaults")
	assert.Equal(t, pointset.Within(1e-6), cfg.PointEquality())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "engine.yaml", "max_points: 42\nworkers: 4\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxPoints)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, DefaultEpsilon, cfg.Epsilon)
	assert.Equal(t, EqualityExact, cfg.Equality)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, file, contents, message string
	}{
		{"unknown extension", "engine.json", `{}`, "unsupported config format"},
		{"unknown toml field", "engine.toml", "colour = 1\n", "decoding"},
		{"unknown yaml field", "engine.yml", "colour: 1\n", "decoding"},
		{"bad equality", "engine.toml", `equality = "fuzzy"` + "\n", `equality must be "exact" or "epsilon"`},
		{"zero bound", "engine.yaml", "max_points: 0\n", "max_points must be positive"},
		{"negative epsilon", "engine.toml", "epsilon = -1.0\n", "epsilon must be non-negative"},
		{"no workers", "engine.toml", "workers = 0\n", "workers must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateMergeTolerance(t *testing.T) {
	cfg := Default()
	cfg.MergeTolerance = -1
	assert.ErrorContains(t, cfg.Validate(), "merge_tolerance")
}
