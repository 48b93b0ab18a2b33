package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cronman/cronman/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initOutputPath string
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default cronman.yaml",
	Long: `Creates a default configuration file with examples.

By default, creates cronman.yaml in the current directory.
Use -o to specify a custom output path.

Examples:
  # Create cronman.yaml in current directory
  cronman init

  # Create in specific location
  cronman init -o ~/.config/cronman/cronman.yaml`,
	Run: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", "", "Output file path (default: ./cronman.yaml)")
}

func runInit(cmd *cobra.Command, args []string) {
	log.Info("Starting config initialization")

	outputPath := initOutputPath
	if outputPath == "" {
		outputPath = "./cronman.yaml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		log.Fatalf("Invalid output path %s, error %v", outputPath, err)
	}

	log.Debugf("Output path resolved %s", absPath)

	if utils.FileExists(absPath) {
		log.Warnf("Config file already exists %s", absPath)
		fmt.Printf("⚠️  Config file already exists: %s\n", absPath)

		if !utils.AskConfirmation("Overwrite? (y/N)") {
			log.Info("User cancelled")
			fmt.Println("❌ Cancelled")
			return
		}
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create directory %s, error %v", dir, err)
	}

	if err := os.WriteFile(absPath, []byte(configDefault), 0644); err != nil {
		log.Fatalf("Failed to write config file %s, error %v", absPath, err)
	}

	log.Infof("Config file created successfully %s", absPath)
	fmt.Printf("✅ Config file created: %s\n", absPath)

	printNextSteps(absPath)
}

func printNextSteps(configPath string) {
	fmt.Println("\n📝 Next steps:")
	fmt.Println("   1. Edit config if needed:")
	fmt.Printf("      nano %s\n", configPath)
	fmt.Println("\n   2. Add your first job:")
	fmt.Println(`      cronman add "Daily Backup" -s "0 2 * * *" -c "/usr/local/bin/backup.sh"`)
	fmt.Println("\n   3. Check the list and next run times:")
	fmt.Println("      cronman list")
	fmt.Println("\n   4. Push jobs to the platform scheduler:")
	fmt.Println("      cronman list --system")
}
