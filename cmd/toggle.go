package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// enableCmd represents the enable command
var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Resume a paused job",
	Long: `Mark a job as enabled so the next sync schedules it again.

Example:
  cronman enable "Daily Backup"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setEnabled(args[0], true)
	},
}

// disableCmd represents the disable command
var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Pause a job without removing it",
	Long: `Mark a job as disabled. The entry keeps its schedule and command but
stops being installed in the platform scheduler.

Example:
  cronman disable "Daily Backup"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setEnabled(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func setEnabled(name string, enabled bool) {
	loadEnvIfExists()
	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	sched := newScheduler(cfg)
	ctx := context.Background()

	changed := false
	err = withSaveLock(func() error {
		entries, err := sched.Load(ctx)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}

		i, err := findEntry(entries, name)
		if err != nil {
			return err
		}
		if entries[i].Enabled == enabled {
			log.Warnf("⚠️  Job %q is already %s", name, stateWord(enabled))
			return nil
		}

		entries[i].Enabled = enabled
		changed = true
		return sched.Save(ctx, entries)
	})
	if err != nil {
		log.Fatalf("❌ Failed to update job: %v", err)
	}

	if changed {
		log.Infof("✅ Job %q is now %s", name, stateWord(enabled))
	}
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
