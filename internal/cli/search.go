package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/search"
)

// NewSearchCmd creates the 'search' command.
func NewSearchCmd() *cobra.Command {
	var jsonOutput bool
	var withEndpoints bool

	cmd := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Search the API catalog by keyword",
		Long: `Search cataloged APIs and print two ranked result sets:

  text      full-text matches over name, description and category
  semantic  records whose hashing embedding is close to the query

A record may legitimately appear in both buckets. Every search is
appended to the search log, which feeds the stats command.`,
		Example: `  apiscout search space imagery
  apiscout search weather --json
  apiscout search census --endpoints`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "), jsonOutput, withEndpoints)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVarP(&withEndpoints, "endpoints", "e", false, "Show endpoints for each match")

	return cmd
}

func runSearch(query string, jsonOutput, withEndpoints bool) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	results, err := sess.engine.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if results.Empty() {
		fmt.Printf("No results for %q.\n", query)
		return nil
	}

	printBucket(sess, "Text matches", results.Text, withEndpoints)
	printBucket(sess, "Semantic matches", results.Semantic, withEndpoints)
	return nil
}

func printBucket(sess *session, title string, matches []search.Match, withEndpoints bool) {
	if len(matches) == 0 {
		return
	}

	fmt.Printf("\n%s (%d):\n", title, len(matches))
	for i, m := range matches {
		category := m.Category
		if category == "" {
			category = "uncategorized"
		}
		fmt.Printf("  %d. %s [%s]\n", i+1, m.Name, category)
		if m.BaseURL != "" {
			fmt.Printf("     %s\n", m.BaseURL)
		}
		if m.Description != "" {
			fmt.Printf("     %s\n", m.Description)
		}
		if m.DocsURL != "" {
			fmt.Printf("     Docs: %s\n", m.DocsURL)
		}
		if m.Score > 0 {
			fmt.Printf("     Score: %.3f\n", m.Score)
		}

		if withEndpoints {
			endpoints, err := sess.store.GetEndpoints(m.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load endpoints for %s: %v\n", m.Name, err)
				continue
			}
			for _, ep := range endpoints {
				fmt.Printf("     %s %s  %s\n", ep.Method, ep.Path, ep.Description)
			}
		}
	}
}
