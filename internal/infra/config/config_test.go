package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "FORECAST_HORIZON_DAYS", "GEMINI_MODEL",
		"REPORT_CACHE_SIZE", "REPORT_CACHE_TTL_MINUTES",
	} {
		_ = os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Forecast.HorizonDays)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Model)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, 30, cfg.Cache.TTLMinutes)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("FORECAST_HORIZON_DAYS", "10")
	t.Setenv("ACCUWEATHER_API_KEY", "aw-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Forecast.HorizonDays)
	assert.Equal(t, "aw-key", cfg.Forecast.APIKey)
	assert.Equal(t, "gm-key", cfg.Model.APIKey)
}

func TestGetSecret_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte("file-key\n"), 0o600))

	_ = os.Unsetenv("TEST_SECRET")
	t.Setenv("TEST_SECRET_FILE", path)

	assert.Equal(t, "file-key", getSecret("TEST_SECRET", "TEST_SECRET_FILE", "fallback"))

	// The direct variable wins over the file.
	t.Setenv("TEST_SECRET", "direct-key")
	assert.Equal(t, "direct-key", getSecret("TEST_SECRET", "TEST_SECRET_FILE", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		fallback int
		expected int
	}{
		{name: "valid value", envValue: "42", fallback: 7, expected: 42},
		{name: "invalid value uses fallback", envValue: "not-a-number", fallback: 7, expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.envValue)
			assert.Equal(t, tt.expected, getEnvInt("TEST_INT", tt.fallback))
		})
	}
}
