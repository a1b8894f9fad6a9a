package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://eziz.org/iframes/genxml.php", cfg.Locator.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Locator.Timeout())
	assert.Equal(t, 100, cfg.Locator.DefaultRadius)
	assert.Equal(t, 500, cfg.Locator.StateRadius)
	assert.InDelta(t, 0.5, cfg.Filter.MinKeepRatio, 1e-9)
	assert.Equal(t, 200, cfg.Batch.Radius)
	assert.Equal(t, "json_counties", cfg.Batch.OutputDir)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VFC_LOCATOR_DEFAULT_RADIUS", "250")
	t.Setenv("VFC_BATCH_OUTPUT_DIR", "out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Locator.DefaultRadius)
	assert.Equal(t, "out", cfg.Batch.OutputDir)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

func TestInitLogger_BadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "shout", Format: "json"}))
}
