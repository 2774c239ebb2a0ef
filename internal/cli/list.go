package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewListCmd creates the 'list' command.
func NewListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all cataloged APIs",
		Long:    `List every record in the catalog, ordered by name.`,
		Example: `  apiscout list
  apiscout ls --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runList(jsonOutput bool) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	recs, err := sess.store.ListAPIs()
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("Catalog is empty.")
		fmt.Println("Run 'apiscout setup' to seed the starter records.")
		return nil
	}

	fmt.Printf("Cataloged APIs (%d):\n", len(recs))
	for _, rec := range recs {
		category := rec.Category
		if category == "" {
			category = "uncategorized"
		}
		fmt.Printf("  %-30s %-25s %s\n", rec.Name, rec.Host, category)
	}
	return nil
}
