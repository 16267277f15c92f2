package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3*time.Minute, cfg.PersistInterval)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEST_STEP_HOME", "/data/steps")
	path := writeFile(t, dir, "config.yaml", `
dir: ${TEST_STEP_HOME}
backend: sqlite
timezone: Europe/Moscow
persist_interval: 30s
log_format: json
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "/data/steps", cfg.Dir)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone)
	assert.Equal(t, 30*time.Second, cfg.PersistInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultSensorFile, cfg.SensorFile, "unset keys keep defaults")
}

func TestLoadEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "backend: sqlite\ntimezone: UTC\n")
	envFile := writeFile(t, dir, ".env", "STEPMON_BACKEND=memory\nSTEPMON_TIMEZONE=Asia/Tokyo\nOTHER=ignored\n")
	t.Setenv("STEPMON_TIMEZONE", "Europe/Berlin")
	t.Setenv("STEPMON_PERSIST_INTERVAL", "1m")

	cfg, err := Load(path, envFile)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Backend, ".env overrides the file")
	assert.Equal(t, "Europe/Berlin", cfg.Timezone, "process env overrides .env")
	assert.Equal(t, time.Minute, cfg.PersistInterval)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		invalid bool
	}{
		{name: "bad yaml", yaml: "backend: [unclosed"},
		{name: "unknown backend", yaml: "backend: redis", invalid: true},
		{name: "zero interval", yaml: "persist_interval: 0s", invalid: true},
		{name: "bad timezone", yaml: "timezone: Mars/Olympus", invalid: true},
		{name: "bad log format", yaml: "log_format: xml", invalid: true},
		{name: "bad env interval", env: map[string]string{"STEPMON_PERSIST_INTERVAL": "soon"}, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeFile(t, t.TempDir(), "config.yaml", tt.yaml)

			_, err := Load(path, "")
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}
