package cmd

import (
	"context"
	"fmt"

	"github.com/cronman/cronman/internal/utils"
	"github.com/spf13/cobra"
)

var (
	removeYes bool
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a scheduled job",
	Long: `Remove a job from the active backend by name.

Examples:
  cronman remove "Daily Backup"
  cronman rm "Daily Backup" --system

  # Skip the confirmation prompt
  cronman remove "Daily Backup" -y`,
	Args: cobra.ExactArgs(1),
	Run:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) {
	loadEnvIfExists()
	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	name := args[0]
	sched := newScheduler(cfg)
	ctx := context.Background()

	if !removeYes {
		if !utils.AskConfirmation(fmt.Sprintf("Remove job %q? (y/N)", name)) {
			fmt.Println("❌ Cancelled")
			return
		}
	}

	err = withSaveLock(func() error {
		entries, err := sched.Load(ctx)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}

		i, err := findEntry(entries, name)
		if err != nil {
			return err
		}

		entries = append(entries[:i], entries[i+1:]...)
		return sched.Save(ctx, entries)
	})
	if err != nil {
		log.Fatalf("❌ Failed to remove job: %v", err)
	}

	log.Infof("✅ Job %q removed from the %s backend", name, sched.BackendName())
}
