package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the 'stats' command.
func NewStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long: `Display catalog statistics: total record count, breakdowns by
category and source (descending), search activity over the last 7 days
and the most recent queries.`,
		Example: `  apiscout stats
  apiscout stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runStats(jsonOutput bool) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	stats, err := sess.store.Stats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Total APIs: %d\n", stats.TotalAPIs)

	if len(stats.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, gc := range stats.ByCategory {
			fmt.Printf("  %-20s %d\n", gc.Name, gc.Count)
		}
	}
	if len(stats.BySource) > 0 {
		fmt.Println("\nBy source:")
		for _, gc := range stats.BySource {
			fmt.Printf("  %-20s %d\n", gc.Name, gc.Count)
		}
	}

	fmt.Printf("\nSearches this week: %d\n", stats.SearchesLastWeek)
	if len(stats.RecentSearches) > 0 {
		fmt.Println("Recent searches:")
		for _, q := range stats.RecentSearches {
			fmt.Printf("  - %s\n", q)
		}
	}
	return nil
}
