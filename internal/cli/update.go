package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/catalog"
)

// NewUpdateCmd creates the 'update' command: merge ./apis.json when
// present, then seed the built-in records. Both steps are idempotent.
func NewUpdateCmd() *cobra.Command {
	var importPath string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge apis.json and seed the built-in records",
		Long: `Refresh the catalog from local sources:

 1. If an export file exists (default ./apis.json), merge every record
    in it into the catalog.
 2. Seed the built-in starter records.

Both steps upsert by (name, host), so running update repeatedly never
duplicates records.`,
		Example: `  apiscout update
  apiscout update --import ./backup/apis.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(importPath)
		},
	}

	cmd.Flags().StringVar(&importPath, "import", "apis.json", "Export file to merge before seeding")

	return cmd
}

func runUpdate(importPath string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	merged := 0
	if data, err := os.ReadFile(importPath); err == nil {
		var snap catalog.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("failed to parse %s: %w", importPath, err)
		}
		merged, err = sess.store.ImportSnapshot(snap)
		if err != nil {
			return fmt.Errorf("failed to merge %s: %w", importPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", importPath, err)
	}

	seeded, err := sess.store.SeedDefaults()
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	fmt.Printf("✓ Merged from %s: %d; Seeded: %d\n", importPath, merged, seeded)
	return nil
}
