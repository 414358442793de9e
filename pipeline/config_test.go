package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mengqhui/kaldi/pipeline"
	"github.com/mengqhui/kaldi/semiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, semiring.DefaultDelta, cfg.Delta)
	assert.True(t, cfg.TestInLog)
	assert.True(t, cfg.DeterminizeInLog)
	assert.True(t, cfg.SpecialEpsRemoval)
	assert.True(t, cfg.TableCompose)
	assert.Zero(t, cfg.MaxStates)
	assert.Equal(t, "tropical", cfg.Semiring)
}

func TestParseConfig_Semiring(t *testing.T) {
	cfg, err := pipeline.ParseConfig([]byte("semiring: log\n"))
	require.NoError(t, err)
	assert.Equal(t, "log", cfg.Semiring)

	_, err = pipeline.ParseConfig([]byte("semiring: real\n"))
	require.ErrorIs(t, err, pipeline.ErrInvalidConfig)
	assert.ErrorIs(t, err, semiring.ErrUnknown)
}

func TestParseConfig(t *testing.T) {
	cfg, err := pipeline.ParseConfig([]byte(`
tolerance: 0.1
max_states: 500
table_compose: false
concurrency: 4
`))
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.Tolerance)
	assert.Equal(t, 500, cfg.MaxStates)
	assert.False(t, cfg.TableCompose)
	assert.Equal(t, 4, cfg.Concurrency)
	// untouched keys keep their defaults
	assert.True(t, cfg.DeterminizeInLog)
	assert.Equal(t, semiring.DefaultDelta, cfg.Delta)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := pipeline.ParseConfig([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), cfg)
}

func TestParseConfig_UnknownKey(t *testing.T) {
	_, err := pipeline.ParseConfig([]byte("max_state: 3\n"))
	require.Error(t, err)
}

func TestParseConfig_Invalid(t *testing.T) {
	cases := []string{
		"delta: 0\n",
		"tolerance: -1\n",
		"max_states: -2\n",
		"table_ratio: 1.5\n",
		"min_table_size: 0\n",
		"concurrency: -1\n",
	}
	for _, c := range cases {
		_, err := pipeline.ParseConfig([]byte(c))
		assert.ErrorIs(t, err, pipeline.ErrInvalidConfig, c)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := pipeline.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), cfg)

	cfg, err = pipeline.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "stage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("special_eps_removal: false\n"), 0o600))
	cfg, err = pipeline.LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.SpecialEpsRemoval)
}
