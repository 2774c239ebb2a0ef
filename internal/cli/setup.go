package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/config"
)

// NewSetupCmd creates the 'setup' command for first-run initialization.
func NewSetupCmd() *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initialize configuration and the catalog",
		Long: `Create the default configuration file and data directory, open the
catalog database (creating its schema) and seed the built-in starter
records. Safe to re-run: existing config and records are left alone.`,
		Example: `  apiscout setup
  apiscout setup --no-seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(noSeed)
		},
	}

	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip seeding the starter records")

	return cmd
}

func runSetup(noSeed bool) error {
	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	dataDir, err := sess.cfg.DataDir()
	if err != nil {
		return err
	}

	fmt.Printf("✓ Config: %s\n", cfgPath)
	fmt.Printf("✓ Data directory: %s\n", dataDir)

	if !noSeed {
		seeded, err := sess.store.SeedDefaults()
		if err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		fmt.Printf("✓ Seeded %d starter records\n", seeded)
	}

	count, err := sess.store.CountAPIs()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Catalog ready: %d APIs\n", count)
	fmt.Println("\nNext: try 'apiscout search space' or 'apiscout serve'")
	return nil
}
