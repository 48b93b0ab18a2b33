package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	loadEnvOverrides(cfg)

	return cfg, cfg.Validate()
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Timezone: stringOrEmpty("TZ", ""),
	}

	cfg.File = FileConfig{
		Path: stringOrEmpty("CRONMAN_FILE", ""),
	}

	cfg.Launchd = LaunchdConfig{
		AgentsDir:     stringOrEmpty("CRONMAN_AGENTS_DIR", ""),
		LogDir:        stringOrEmpty("CRONMAN_LOG_DIR", ""),
		LabelPrefix:   stringOrEmpty("CRONMAN_LABEL_PREFIX", ""),
		RollbackRatio: floatOrEmpty("CRONMAN_ROLLBACK_RATIO", 0),
	}

	return cfg, cfg.Validate()
}

func loadEnvOverrides(cfg *Config) {

	if timezone, ok := stringLookup("TZ"); ok {
		cfg.Timezone = timezone
	}

	if filePath, ok := stringLookup("CRONMAN_FILE"); ok {
		cfg.File.Path = filePath
	}

	if agentsDir, ok := stringLookup("CRONMAN_AGENTS_DIR"); ok {
		cfg.Launchd.AgentsDir = agentsDir
	}
	if logDir, ok := stringLookup("CRONMAN_LOG_DIR"); ok {
		cfg.Launchd.LogDir = logDir
	}
	if labelPrefix, ok := stringLookup("CRONMAN_LABEL_PREFIX"); ok {
		cfg.Launchd.LabelPrefix = labelPrefix
	}
	if rollbackRatio, ok := floatLookup("CRONMAN_ROLLBACK_RATIO"); ok {
		cfg.Launchd.RollbackRatio = rollbackRatio
	}

}
