package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	cfg := &Config{
		HQPath:  "/srv/hq",
		Scopes:  []string{"knowledge/public", "teams/*/knowledge"},
		DataDir: "/srv/hq-data",
	}
	require.NoError(t, Write(cfg, path))

	Init(path)
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Point at a missing file so only defaults apply.
	Init(filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.HQPath)
	assert.Equal(t, DefaultScopes, cfg.Scopes)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, os.Setenv("HQ_HQ_PATH", "/from/env"))
	t.Cleanup(func() { os.Unsetenv("HQ_HQ_PATH") })

	Init(filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.HQPath)
}
