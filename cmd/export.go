package cmd

import (
	"context"
	"fmt"

	"github.com/cronman/cronman/internal/crontab"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print all jobs in crontab format",
	Long: `Serialize the active backend to crontab format on stdout. The output
parses back into the same list, so it works as a backup or as input for
another machine.

Examples:
  cronman export > jobs.cron
  cronman export --system`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	loadEnvIfExists()
	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	sched := newScheduler(cfg)
	entries, err := sched.Load(context.Background())
	if err != nil {
		log.Fatalf("❌ Failed to load jobs from %s: %v", sched.BackendName(), err)
	}

	fmt.Print(crontab.Serialize(entries))
}
