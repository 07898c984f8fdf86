package config

import (
	"testing"

	"gopbo/internal/cscv"
	"gopbo/internal/metric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PBO_BLOCKS", "PBO_METRIC", "PBO_WORKERS", "PBO_MAX_COMBINATIONS", "DATABASE_URL", "PBO_INPUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Analysis.Blocks)
	assert.Equal(t, metric.NameSharpe, cfg.Analysis.Metric)
	assert.Equal(t, 0, cfg.Analysis.Workers)
	assert.Equal(t, cscv.DefaultMaxCombinations, cfg.Analysis.MaxCombinations)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PBO_BLOCKS", "12")
	t.Setenv("PBO_METRIC", "mean")
	t.Setenv("PBO_WORKERS", "4")
	t.Setenv("PBO_MAX_COMBINATIONS", "5000")
	t.Setenv("DATABASE_URL", "postgres://localhost/pbo")
	t.Setenv("PBO_INPUT", "/data/returns.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Analysis.Blocks)
	assert.Equal(t, metric.NameMean, cfg.Analysis.Metric)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, 5000, cfg.Analysis.MaxCombinations)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "/data/returns.xlsx", cfg.Input.FilePath)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"odd blocks", "PBO_BLOCKS", "7"},
		{"too few blocks", "PBO_BLOCKS", "1"},
		{"unknown metric", "PBO_METRIC", "calmar"},
		{"negative workers", "PBO_WORKERS", "-1"},
		{"zero ceiling", "PBO_MAX_COMBINATIONS", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
