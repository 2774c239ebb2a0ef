package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewEndpointsCmd creates the 'endpoints' command.
func NewEndpointsCmd() *cobra.Command {
	var host string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "endpoints <name>",
		Short: "List the known endpoints of an API",
		Long: `List the endpoints stored for a catalog record, ordered by method
then path. The record is looked up by name; pass --host to
disambiguate when the same name exists on several hosts.`,
		Example: `  apiscout endpoints "NASA Open APIs"
  apiscout endpoints "NASA Open APIs" --host api.nasa.gov --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpoints(args[0], host, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Disambiguate by host")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runEndpoints(name, host string, jsonOutput bool) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	endpoints, err := sess.store.EndpointsByNameHost(name, host)
	if err != nil {
		return fmt.Errorf("failed to load endpoints: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(endpoints)
	}

	if len(endpoints) == 0 {
		fmt.Printf("No endpoints recorded for %q.\n", name)
		return nil
	}

	fmt.Printf("Endpoints for %q (%d):\n", name, len(endpoints))
	for _, ep := range endpoints {
		if ep.Description != "" {
			fmt.Printf("  %-7s %s  %s\n", ep.Method, ep.Path, ep.Description)
		} else {
			fmt.Printf("  %-7s %s\n", ep.Method, ep.Path)
		}
	}
	return nil
}
