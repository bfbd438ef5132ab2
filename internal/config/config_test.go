package config

import (
	"testing"
	"time"

	"heartbi/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "CORS_ORIGINS", "DATASET_URL", "FETCH_TIMEOUT",
		"MAX_UPLOAD_MB", "ASSETS_DIR", "SESSION_TTL", "PPROF_ENABLED", "PPROF_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Empty(t, cfg.Server.CORSOrigins)
	assert.Equal(t, DefaultDatasetURL, cfg.Data.DefaultURL)
	assert.Equal(t, 15*time.Second, cfg.Data.FetchTimeout)
	assert.Equal(t, int64(50*1024*1024), cfg.Data.MaxUploadBytes)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.Data.FetchTimeout)
	assert.Equal(t, int64(2*1024*1024), cfg.Data.MaxUploadBytes)
	assert.True(t, cfg.Profiling.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"relative dataset url", map[string]string{"DATASET_URL": "heart.csv"}},
		{"zero upload limit", map[string]string{"MAX_UPLOAD_MB": "0"}},
		{"pprof clashes with port", map[string]string{"PORT": "8080", "PPROF_ENABLED": "1", "PPROF_PORT": "8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
