package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.CleanupInterval)
	assert.True(t, cfg.CleanupOnStart)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestFromViper_Rejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		msg  string
	}{
		{"unknown driver", "DATABASE_DRIVER", "oracle", "unsupported DATABASE_DRIVER"},
		{"zero interval", "CLEANUP_INTERVAL", "0s", "CLEANUP_INTERVAL"},
		{"empty secret", "JWT_SECRET", "", "JWT_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CLEANUP_INTERVAL=90m\nDATABASE_DSN=file::memory:\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CLEANUP_INTERVAL")
		os.Unsetenv("DATABASE_DSN")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, "file::memory:", cfg.DatabaseDSN)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
