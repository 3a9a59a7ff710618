package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/testutil"
)

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAttempts, cfg.Runner.Attempts)
	assert.Equal(t, DefaultBaseDelay, cfg.Runner.BaseDelay)
	assert.Equal(t, DefaultTimeout, cfg.Runner.Timeout)
	assert.Equal(t, "npm", cfg.Runner.PackageManager)
	assert.True(t, cfg.History.Enabled)
	assert.NotContains(t, cfg.History.Path, "~", "history path is expanded")
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
	assert.True(t, cfg.Defaults.IsEmpty())
}

func TestLoader_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", `
defaults:
  stylesheet: less
  devPort: 9005
  odms: [mongoose, sequelize]
  ws: false
log:
  timestamps: false
runner:
  attempts: 5
  baseDelay: 500ms
  packageManager: yarn
history:
  enabled: false
  path: /tmp/fsgen-history.db
`)

	loader := NewLoader()
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Stylesheet)
	assert.Equal(t, "less", *cfg.Defaults.Stylesheet)
	require.NotNil(t, cfg.Defaults.DevPort)
	assert.Equal(t, "9005", *cfg.Defaults.DevPort)
	require.NotNil(t, cfg.Defaults.ODMs)
	assert.Equal(t, []string{"mongoose", "sequelize"}, *cfg.Defaults.ODMs)
	assert.False(t, *cfg.Defaults.WS)
	assert.Nil(t, cfg.Defaults.Markup)

	assert.False(t, *cfg.Log.Timestamps)
	assert.Equal(t, 5, cfg.Runner.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Runner.BaseDelay)
	assert.Equal(t, DefaultTimeout, cfg.Runner.Timeout)
	assert.Equal(t, "yarn", cfg.Runner.PackageManager)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/fsgen-history.db", cfg.History.Path)

	assert.Equal(t, SourceConfig, loader.Source("runner.attempts"))
	assert.Equal(t, SourceDefault, loader.Source("runner.timeout"))

	baseline, err := cfg.Baseline()
	require.NoError(t, err)
	assert.Equal(t, options.Less, baseline.Stylesheet)
	assert.Equal(t, []options.ODM{options.Mongoose, options.Sequelize}, baseline.ODMs)
	assert.False(t, baseline.WS)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", "runner:\n  attempts: 5\n")
	t.Setenv("FSGEN_RUNNER_ATTEMPTS", "7")
	t.Setenv("FSGEN_HISTORY_ENABLED", "false")

	loader := NewLoader()
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Runner.Attempts)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, SourceEnv, loader.Source("runner.attempts"))

	var found bool
	for _, v := range loader.Resolved() {
		if v.Key == "runner.attempts" {
			found = true
			assert.Equal(t, SourceEnv, v.Source)
		}
	}
	assert.True(t, found)
}

func TestLoader_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", "runner: [unclosed\n")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}
