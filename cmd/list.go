package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cronman/cronman/internal/crontab"
	"github.com/cronman/cronman/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled jobs",
	Long: `Show every job in the active backend with its schedule, command,
state and next run time.

Examples:
  # Jobs in the file store
  cronman list

  # Jobs installed in the platform scheduler
  cronman list --system`,
	Run: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
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

	if len(entries) == 0 {
		fmt.Printf("No jobs in the %s backend yet. Add one with 'cronman add'.\n", sched.BackendName())
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCHEDULE\tCOMMAND\tSTATE\tNEXT RUN")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			entry.Name,
			entry.Schedule,
			entry.Command,
			stateText(entry),
			nextRunText(entry),
		)
	}
	_ = w.Flush()
}

func stateText(entry crontab.Entry) string {
	if entry.Enabled {
		return color.GreenString("enabled")
	}
	return color.YellowString("disabled")
}

func nextRunText(entry crontab.Entry) string {
	if !entry.Enabled {
		return "-"
	}

	next, err := entry.NextRun(time.Now())
	if err != nil {
		return color.RedString("invalid schedule")
	}

	return fmt.Sprintf("%s (in %s)", utils.FormatTime(next), utils.FormatDuration(time.Until(next)))
}
