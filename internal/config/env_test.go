package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/bumpver/internal/format"
)

// clearBumpverEnv isolates tests from the ambient environment.
func clearBumpverEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvType, EnvNoLock, EnvNoColor} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearBumpverEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.Type)
	assert.False(t, cfg.NoLock)
	assert.False(t, cfg.NoColor)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearBumpverEnv(t)
	t.Setenv(EnvType, "YML")
	t.Setenv(EnvNoLock, "true")
	t.Setenv(EnvNoColor, "1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, format.YAML.String(), cfg.Type)
	assert.True(t, cfg.NoLock)
	assert.True(t, cfg.NoColor)
}

func TestFromEnv_InvalidType(t *testing.T) {
	clearBumpverEnv(t)
	t.Setenv(EnvType, "ini")

	_, err := FromEnv()
	assert.True(t, format.IsUnsupported(err))
}

func TestFromEnv_InvalidBool(t *testing.T) {
	clearBumpverEnv(t)
	t.Setenv(EnvNoLock, "sometimes")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvNoLock)
}

func TestFromEnv_UnsetVariables(t *testing.T) {
	orig := lookupEnv
	t.Cleanup(func() { lookupEnv = orig })
	lookupEnv = func(string) (string, bool) { return "", false }

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}
