package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000

model:
  path: "artifacts/model.json"
  metrics_path: "artifacts/metrics.json"

classifier:
  backend: "artifact"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address())
	assert.Equal(t, "artifacts/model.json", cfg.Model.Path)
	assert.Equal(t, "artifacts/metrics.json", cfg.Model.MetricsPath)
	assert.Equal(t, "artifact", cfg.Classifier.Backend)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  host: \"0.0.0.0\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "models/linear_svc.json", cfg.Model.Path)
	assert.Equal(t, "models/linear_svc_metrics.json", cfg.Model.MetricsPath)
	assert.Equal(t, "artifact", cfg.Classifier.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MODEL_PATH", "/opt/models/latest.json")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "8080")

	path := writeConfig(t, "server:\n  port: 9000\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/models/latest.json", cfg.Model.Path)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
