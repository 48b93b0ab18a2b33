package cmd

import (
	"os"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/logr/adapters/zap.v1"
	"github.com/spf13/cobra"
)

var (
	log       logr.Logger
	cfgFile   string
	useSystem bool

	configDefault = `# =============================================================================
# CRONMAN - Scheduled Job Manager Configuration
# =============================================================================

timezone: "" #Ex: America/Sao_Paulo, UTC, by default the system timezone

# Crontab-format file used as the default store.
file:
  # path: ~/.cronman-crontab

# Launch agent settings, only used on macOS with --system.
launchd:
  # agents_dir: ~/Library/LaunchAgents
  # log_dir: ~/Library/Logs/cronman
  # label_prefix: com.cronman
  # rollback_ratio: 0.5
`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cronman",
	Short: "Manage scheduled jobs across cron and launchd",
	Long: `cronman keeps your scheduled jobs in one named, versionable list and
	syncs them to the scheduler your platform actually runs:

	- Named entries with standard 5-field cron schedules
	- A plain crontab-format file as the default store
	- The user crontab on Linux and BSD (--system)
	- launchd agents on macOS, one launch agent per job (--system)

	Examples:

	# Create a default cronman.yaml
	cronman init

	# Add a job to the file store
	cronman add "Daily Backup" -s "0 2 * * *" -c "/usr/local/bin/backup.sh"

	# See every job with its next run time
	cronman list

	# Manage the platform scheduler directly
	cronman list --system
	cronman add "Sync" -s "*/5 * * * *" -c "/usr/local/bin/sync.sh" --system

	# Pause and resume a job
	cronman disable "Daily Backup"
	cronman enable "Daily Backup"

	# Dump the list in crontab format
	cronman export > jobs.cron
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := os.Getenv("CRONMAN_LOG_LEVEL")
		if level == "" {
			level = "INFO"
		}

		log = zap.New(
			zap.WithConsole(true),
			zap.WithConsoleLevel(level),
			zap.WithConsoleFormatter("TEXT"),
			zap.WithEnableCaller(false),
		)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cronman.yaml)")
	rootCmd.PersistentFlags().BoolVar(&useSystem, "system", false, "operate on the platform scheduler (launchd/cron) instead of the file store")
}
