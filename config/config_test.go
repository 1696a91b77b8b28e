package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/dotbench/harness"
)

func TestDefaultMatchesStandardRun(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	sizes, err := cfg.SizeSpecs()
	require.NoError(t, err)
	assert.Equal(t, harness.StandardSizes(), sizes)

	assert.Equal(t, 20, cfg.Trials)
	assert.Equal(t, 1e-10, cfg.Tolerance)
	assert.Equal(t, int64(42), cfg.SeedA)
	assert.Equal(t, int64(123), cfg.SeedB)
	assert.Equal(t, []string{"scalar", "gonum"}, cfg.Kernels)
	assert.Equal(t, harness.DefaultConfig(), cfg.Harness())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	data := []byte(`
powers: [10]
sizes: [1000, 7]
kernels: [scalar, unrolled, gonum]
trials: 5
tolerance: 1e-8
keep_going: true
max_memory: 1048576
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	sizes, err := cfg.SizeSpecs()
	require.NoError(t, err)
	require.Len(t, sizes, 3)
	assert.Equal(t, "2^10 = 1024", sizes[0].Label())
	assert.Equal(t, 1000, sizes[1].N)
	assert.Equal(t, 7, sizes[2].N)

	assert.Equal(t, []string{"scalar", "unrolled", "gonum"}, cfg.Kernels)
	assert.Equal(t, 5, cfg.Trials)
	assert.Equal(t, 1e-8, cfg.Tolerance)
	assert.True(t, cfg.KeepGoing)
	assert.True(t, cfg.Harness().KeepGoing)
	assert.Equal(t, uint64(1<<20), cfg.MaxMemory)

	// Seeds were not in the file and keep their defaults.
	assert.Equal(t, int64(42), cfg.SeedA)
	assert.Equal(t, int64(123), cfg.SeedB)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "powers: [20"},
		{"exponent too large", "powers: [31]"},
		{"negative exponent", "powers: [-1]"},
		{"zero size", "powers: []\nsizes: [0]"},
		{"no sizes", "powers: []"},
		{"no kernels", "kernels: []"},
		{"zero trials", "trials: 0"},
		{"negative tolerance", "tolerance: -1"},
		{"same seeds", "seed_a: 7\nseed_b: 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(tt.yaml), &cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
