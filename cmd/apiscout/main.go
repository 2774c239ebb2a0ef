/*
Package main is the entry point for the apiscout CLI.

apiscout is a local API catalog with keyword and semantic search: it
stores API records and their endpoints in SQLite, indexes them with a
full-text index and hashing embeddings, and serves search over CLI and
HTTP.

Usage:
  apiscout [command]

Available Commands:
  setup       Initialize configuration and the catalog
  ingest      Add or merge an API record
  install     Install an API from an OpenAPI spec
  search      Search the catalog
  list        List all cataloged APIs
  endpoints   List the endpoints of an API
  stats       Show catalog statistics
  export      Export the catalog to JSON
  update      Merge apis.json and seed built-in records
  remove      Remove an API from the catalog
  keys        Manage stored API keys
  serve       Run the catalog HTTP server
  bench       Measure ingest and search latency
  help        Help about any command

Examples:
  # First run
  apiscout setup

  # Add a record and search for it
  apiscout ingest "NASA Open APIs" --host api.nasa.gov --category space
  apiscout search space imagery

  # Serve over HTTP
  apiscout serve --port 8080
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/cli"
	"github.com/apiscout/apiscout/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "apiscout",
		Short: "Local API catalog with keyword and semantic search",
		Long: `apiscout catalogs APIs you care about and makes them searchable.

Records are identified by (name, host) and carry descriptions,
categories, docs links and endpoint lists. Every search runs two ways:

  text      full-text matching over name, description and category
  semantic  cosine similarity between hashing embeddings

Results come back in both buckets so exact-term hits and related-topic
hits stay distinguishable.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(cli.NewSetupCmd())
	rootCmd.AddCommand(cli.NewIngestCmd())
	rootCmd.AddCommand(cli.NewInstallCmd())
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewListCmd())
	rootCmd.AddCommand(cli.NewEndpointsCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())
	rootCmd.AddCommand(cli.NewExportCmd())
	rootCmd.AddCommand(cli.NewUpdateCmd())
	rootCmd.AddCommand(cli.NewRemoveCmd())
	rootCmd.AddCommand(cli.NewKeysCmd())
	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewBenchCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
