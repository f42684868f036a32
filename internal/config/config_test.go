package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesBaselineDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 250, cfg.VarWindowDays)
	assert.Equal(t, 0.95, cfg.VarConfidence)
	assert.Equal(t, 75_000.0, cfg.PermanentMinCapitalEUR)
	assert.Equal(t, 1e-10, cfg.YTMTolerance)
	assert.Equal(t, 50, cfg.YTMMaxIter)
	require.NoError(t, cfg.Validate())
}

func TestOptionsOverrideDefaults(t *testing.T) {
	cfg := New(WithEngineVersion("test-1"), WithParallelism(8))
	assert.Equal(t, "test-1", cfg.EngineVersion)
	assert.Equal(t, 8, cfg.Parallelism)
}

func TestWithParallelismIgnoresNonPositive(t *testing.T) {
	cfg := New(WithParallelism(0))
	assert.Equal(t, Default().Parallelism, cfg.Parallelism)
}

func TestValidateRejectsBadConfidence(t *testing.T) {
	cfg := Default()
	cfg.VarConfidence = 1.5
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnvOverridesFromEnvironment(t *testing.T) {
	t.Setenv("RISKENGINE_PARALLELISM", "6")
	t.Setenv("RISKENGINE_VAR_WINDOW_DAYS", "125")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Parallelism)
	assert.Equal(t, 125, cfg.VarWindowDays)
}

func TestLoadFromEnvRejectsMalformedInt(t *testing.T) {
	t.Setenv("RISKENGINE_PARALLELISM", "not-a-number")
	_, err := LoadFromEnv()
	require.Error(t, err)
	os.Unsetenv("RISKENGINE_PARALLELISM")
}
