package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults: без CONFIG_PATH конфиг собирается из окружения
// и значений по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "CONFIG_PATH", "VISIONFLOW_ENV", "VISIONFLOW_API_URL", "VISIONFLOW_HTTP_TIMEOUT")
	t.Setenv("VISIONFLOW_STATE_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

// TestLoad_EnvOverrides: переменные окружения перекрывают умолчания.
func TestLoad_EnvOverrides(t *testing.T) {
	unsetenv(t, "CONFIG_PATH")
	t.Setenv("VISIONFLOW_ENV", "prod")
	t.Setenv("VISIONFLOW_API_URL", "https://api.example.com/api")
	t.Setenv("VISIONFLOW_STATE_DIR", "/tmp/vf-state")
	t.Setenv("VISIONFLOW_HTTP_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/vf-state", cfg.StateDir)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

// TestLoad_ConfigFile: CONFIG_PATH читается как YAML-файл.
func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "env: prod\napi_base_url: https://api.example.com/api\nstate_dir: /tmp/vf\nhttp_client:\n  timeout: 15s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	unsetenv(t, "VISIONFLOW_ENV", "VISIONFLOW_API_URL", "VISIONFLOW_STATE_DIR", "VISIONFLOW_HTTP_TIMEOUT")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

// TestLoad_MissingConfigFile: несуществующий CONFIG_PATH — ошибка.
func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	assert.Error(t, err)
}

// unsetenv снимает переменные окружения на время теста.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
