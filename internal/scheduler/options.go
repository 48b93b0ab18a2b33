package scheduler

import (
	"os"
	"path/filepath"

	"github.com/cronman/cronman/internal/config"
)

// DefaultRollbackRatio is the fraction of failed launchd registrations
// above which a save rolls back to the previous agents ("more than half").
const DefaultRollbackRatio = 0.5

const defaultLabelPrefix = "com.cronman"

type Options struct {
	FilePath      string  // file backend storage path
	AgentsDir     string  // launchd plist directory
	LogDir        string  // directory for launchd job stdout/stderr files
	LabelPrefix   string  // launchd label namespace
	RollbackRatio float64 // failure fraction that triggers rollback
}

func defaultOptions() *Options {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Options{
		FilePath:      filepath.Join(home, ".cronman-crontab"),
		AgentsDir:     filepath.Join(home, "Library", "LaunchAgents"),
		LogDir:        filepath.Join(home, "Library", "Logs", "cronman"),
		LabelPrefix:   defaultLabelPrefix,
		RollbackRatio: DefaultRollbackRatio,
	}
}

func WithConfig(cfg *config.Config) func(*Options) {
	return func(o *Options) {
		if cfg.File.Path != "" {
			o.FilePath = cfg.File.Path
		}
		if cfg.Launchd.AgentsDir != "" {
			o.AgentsDir = cfg.Launchd.AgentsDir
		}
		if cfg.Launchd.LogDir != "" {
			o.LogDir = cfg.Launchd.LogDir
		}
		if cfg.Launchd.LabelPrefix != "" {
			o.LabelPrefix = cfg.Launchd.LabelPrefix
		}
		if cfg.Launchd.RollbackRatio > 0 {
			o.RollbackRatio = cfg.Launchd.RollbackRatio
		}
	}
}
