package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "all", cfg.Filter)
	assert.Equal(t, 0.5, cfg.MinTime)
	assert.Equal(t, 1, cfg.Repetitions)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.False(t, cfg.ListTests)
}

func TestLoadFlagOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--benchmark_filter=BM_Foo", "--benchmark_min_time=2.5"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "BM_Foo", cfg.Filter)
	assert.Equal(t, 2.5, cfg.MinTime)
}

func TestLoadEnvironmentFallback(t *testing.T) {
	t.Setenv("BENCHMARK_FILTER", "BM_FromEnv")
	t.Setenv("BENCHMARK_LIST_TESTS", "yes")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "BM_FromEnv", cfg.Filter)
	assert.True(t, cfg.ListTests)
}

func TestParseBoolTruthyTokens(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "yes", "Y", "on"} {
		assert.True(t, ParseBool(s), "expected %q to be truthy", s)
	}
	for _, s := range []string{"0", "false", "no", "", "maybe"} {
		assert.False(t, ParseBool(s), "expected %q to be falsy", s)
	}
}

