package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cronman.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeYAML(t, `
timezone: America/Sao_Paulo
file:
  path: /tmp/cronman-crontab
launchd:
  agents_dir: /tmp/agents
  log_dir: /tmp/logs
  label_prefix: com.example.jobs
  rollback_ratio: 0.75
`)

	cfg, err := LoadFromYAML(path)

	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, "/tmp/cronman-crontab", cfg.File.Path)
	assert.Equal(t, "/tmp/agents", cfg.Launchd.AgentsDir)
	assert.Equal(t, "/tmp/logs", cfg.Launchd.LogDir)
	assert.Equal(t, "com.example.jobs", cfg.Launchd.LabelPrefix)
	assert.Equal(t, 0.75, cfg.Launchd.RollbackRatio)
}

func TestLoadFromYAMLEnvOverrides(t *testing.T) {
	path := writeYAML(t, `
file:
  path: /tmp/from-yaml
launchd:
  rollback_ratio: 0.75
`)

	t.Setenv("CRONMAN_FILE", "/tmp/from-env")
	t.Setenv("CRONMAN_ROLLBACK_RATIO", "0.9")

	cfg, err := LoadFromYAML(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", cfg.File.Path)
	assert.Equal(t, 0.9, cfg.Launchd.RollbackRatio)
}

func TestLoadFromYAMLMissingFile(t *testing.T) {
	_, err := LoadFromYAML(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read yaml")
}

func TestLoadFromYAMLInvalidContent(t *testing.T) {
	path := writeYAML(t, "launchd: [not a mapping")

	_, err := LoadFromYAML(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal yaml")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TZ", "UTC")
	t.Setenv("CRONMAN_FILE", "/tmp/envfile")
	t.Setenv("CRONMAN_AGENTS_DIR", "/tmp/envagents")
	t.Setenv("CRONMAN_LOG_DIR", "/tmp/envlogs")
	t.Setenv("CRONMAN_LABEL_PREFIX", "org.envtest")
	t.Setenv("CRONMAN_ROLLBACK_RATIO", "0.6")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "/tmp/envfile", cfg.File.Path)
	assert.Equal(t, "/tmp/envagents", cfg.Launchd.AgentsDir)
	assert.Equal(t, "/tmp/envlogs", cfg.Launchd.LogDir)
	assert.Equal(t, "org.envtest", cfg.Launchd.LabelPrefix)
	assert.Equal(t, 0.6, cfg.Launchd.RollbackRatio)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config is valid", Config{}, ""},
		{"bad timezone", Config{Timezone: "Not/AZone"}, "timezone"},
		{"ratio above one", Config{Launchd: LaunchdConfig{RollbackRatio: 1.5}}, "rollback_ratio"},
		{"negative ratio", Config{Launchd: LaunchdConfig{RollbackRatio: -0.1}}, "rollback_ratio"},
		{"low ratio only warns", Config{Launchd: LaunchdConfig{RollbackRatio: 0.25}}, ""},
		{"bad label prefix", Config{Launchd: LaunchdConfig{LabelPrefix: "has spaces"}}, "label_prefix"},
		{"file path traversal", Config{File: FileConfig{Path: "/tmp/../etc/x"}}, "'..'"},
		{"agents dir traversal", Config{Launchd: LaunchdConfig{AgentsDir: "../agents"}}, "agents_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetLocationDefaultsToLocal(t *testing.T) {
	cfg := &Config{}

	loc, err := cfg.GetLocation()

	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestMustLocation(t *testing.T) {
	cfg := &Config{Timezone: "America/Sao_Paulo"}
	assert.Equal(t, "America/Sao_Paulo", cfg.MustLocation().String())

	cfg.Timezone = "Not/AZone"
	assert.Panics(t, func() { cfg.MustLocation() })
}
