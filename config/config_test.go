package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.Equal(t, "/", cfg.Domain)
	require.False(t, cfg.StrictMinimalEncoding)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("COMRADE_DOMAIN", "/forks/child")
	t.Setenv("COMRADE_STRICT_MINIMAL_ENCODING", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/forks/child", cfg.Domain)
	require.True(t, cfg.StrictMinimalEncoding)
}

func TestLoadFallsBackToDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("COMRADE_DOMAIN")
	os.Unsetenv("COMRADE_STRICT_MINIMAL_ENCODING")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
