package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/benchmark"
	"github.com/apiscout/apiscout/internal/catalog"
	"github.com/apiscout/apiscout/internal/embed"
	"github.com/apiscout/apiscout/internal/search"
)

// NewBenchCmd creates the 'bench' command for catalog performance testing.
func NewBenchCmd() *cobra.Command {
	var records int
	var rounds int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure ingest and search latency",
		Long: `Run a performance benchmark against a throwaway catalog:

1. Ingest a batch of synthetic API records
2. Run repeated searches through the text and semantic paths

The benchmark uses a temporary database and an in-memory full-text
index, so it never touches your real catalog.`,
		Example: `  # Default: 100 records, 20 searches
  apiscout bench

  # Larger run
  apiscout bench --records 1000 --rounds 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(records, rounds, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&records, "records", "n", 100, "Number of synthetic records to ingest")
	cmd.Flags().IntVar(&rounds, "rounds", 20, "Number of searches to run")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runBench executes the benchmark against a temporary store.
func runBench(records, rounds int, jsonOutput bool) error {
	dir, err := os.MkdirTemp("", "apiscout-bench-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	store, err := catalog.Open(dir+"/bench.db", embed.DefaultDim)
	if err != nil {
		return fmt.Errorf("failed to open bench catalog: %w", err)
	}
	defer store.Close()

	indexer, err := search.NewIndexer()
	if err != nil {
		return fmt.Errorf("failed to open bench index: %w", err)
	}
	defer indexer.Close()

	if err := store.AttachIndex(indexer); err != nil {
		return fmt.Errorf("failed to attach bench index: %w", err)
	}

	engine := search.NewEngine(store, indexer, search.DefaultOptions())

	result, err := benchmark.Run(store, engine, records, rounds)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(benchmark.Format(result))
	return nil
}
