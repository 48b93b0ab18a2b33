package cmd

import (
	"fmt"
	"os"

	"github.com/cronman/cronman/internal/config"
	"github.com/cronman/cronman/internal/crontab"
	"github.com/cronman/cronman/internal/lock"
	"github.com/cronman/cronman/internal/scheduler"
	"github.com/cronman/cronman/internal/utils"
	"github.com/joho/godotenv"
)

func loadEnvIfExists() {
	envFile := ".env"

	if _, err := os.Stat(envFile); err != nil {
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("⚠️  Failed to load .env: %v", err)
		return
	}

	log.Info("🔧 Loaded .env file (development mode)")
}

func loadConfigOrFail() (*config.Config, error) {
	if cfgFile == "" {
		cfgFile = "./cronman.yaml"
	}

	if utils.FileExists(cfgFile) {
		cfg, err := config.LoadFromYAML(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load YAML config: %w", err)
		}
		utils.InitTimezone(cfg.MustLocation(), "2006-01-02 15:04:05")

		return cfg, nil
	}
	log.Debug("📄 Config file not found, using environment variables")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from ENV: %w", err)
	}

	utils.InitTimezone(cfg.MustLocation(), "2006-01-02 15:04:05")

	return cfg, nil

}

func newScheduler(cfg *config.Config) scheduler.Scheduler {
	return scheduler.New(useSystem, log, scheduler.WithConfig(cfg))
}

// withSaveLock runs a read-modify-write cycle under the cross-process save
// lock so concurrent cronman invocations cannot drop each other's changes.
func withSaveLock(fn func() error) error {
	lockMgr := lock.New()

	if lockMgr.IsSaveRunning() {
		log.Warn("⚠️  Another cronman save is running, waiting for it to finish...")
	}

	if err := lockMgr.LockForSave(); err != nil {
		return fmt.Errorf("acquire save lock: %w", err)
	}
	defer func() {
		_ = lockMgr.UnlockForSave()
	}()

	return fn()
}

func findEntry(entries []crontab.Entry, name string) (int, error) {
	for i := range entries {
		if entries[i].Name == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("no job named %q", name)
}
