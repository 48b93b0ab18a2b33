package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/cronman/cronman/internal/crontab"
	"github.com/spf13/cobra"
)

var (
	addSchedule string
	addCommand  string
	addDisabled bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a scheduled job",
	Long: `Add a named job to the active backend.

The schedule is a standard 5-field cron expression. An invalid schedule is
stored with a warning; the platform scheduler will reject it at sync time
if it cannot run it.

Examples:
  # Every day at 02:00
  cronman add "Daily Backup" -s "0 2 * * *" -c "/usr/local/bin/backup.sh"

  # Straight into the platform scheduler
  cronman add "Sync" -s "30 * * * *" -c "/usr/local/bin/sync.sh" --system

  # Registered but paused
  cronman add "Cleanup" -s "0 4 * * 0" -c "/usr/local/bin/cleanup.sh" --disabled`,
	Args: cobra.ExactArgs(1),
	Run:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addSchedule, "schedule", "s", "",
		"5-field cron schedule, e.g. \"0 2 * * *\"")
	addCmd.Flags().StringVarP(&addCommand, "command", "c", "",
		"command line the job runs")
	addCmd.Flags().BoolVar(&addDisabled, "disabled", false,
		"create the job paused")

	_ = addCmd.MarkFlagRequired("schedule")
	_ = addCmd.MarkFlagRequired("command")
}

func runAdd(cmd *cobra.Command, args []string) {
	loadEnvIfExists()
	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	name := args[0]
	if strings.TrimSpace(name) == "" {
		log.Fatalf("❌ Job name cannot be empty")
	}

	entry := crontab.New(name, addSchedule, addCommand)
	entry.Enabled = !addDisabled

	if !entry.ScheduleValid() {
		log.Warnf("⚠️  Schedule %q is not a valid cron expression, storing it anyway", addSchedule)
	}

	sched := newScheduler(cfg)
	ctx := context.Background()

	err = withSaveLock(func() error {
		entries, err := sched.Load(ctx)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}

		if _, err := findEntry(entries, name); err == nil {
			return fmt.Errorf("a job named %q already exists", name)
		}

		entries = append(entries, entry)
		return sched.Save(ctx, entries)
	})
	if err != nil {
		log.Fatalf("❌ Failed to add job: %v", err)
	}

	log.Infof("✅ Job %q added to the %s backend", name, sched.BackendName())
}
