package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/config"
	"github.com/apiscout/apiscout/internal/keystore"
)

// NewKeysCmd creates the 'keys' command group for managing stored API
// keys. Keys live in a separate bbolt file and never touch the catalog.
func NewKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored API keys",
		Long: `Store, list and check API keys per service.

Keys are kept in a local bbolt database under the data directory. This
is a convenience store for personal use, not a secret manager: anyone
with read access to the file can read the keys.`,
	}

	cmd.AddCommand(newKeysAddCmd())
	cmd.AddCommand(newKeysListCmd())
	cmd.AddCommand(newKeysCheckCmd())
	cmd.AddCommand(newKeysDeleteCmd())
	cmd.AddCommand(newKeysDashboardCmd())

	return cmd
}

// openKeystore opens the keystore at the configured path.
func openKeystore() (*keystore.Store, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, err
	}
	path, err := cfg.KeysPath()
	if err != nil {
		return nil, err
	}
	return keystore.Open(path)
}

func newKeysAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <service> <key>",
		Aliases: []string{"set"},
		Short:   "Store or replace a key for a service",
		Example: `  apiscout keys add nasa DEMO_KEY
  apiscout keys add census a1b2c3d4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			if err := ks.Store(args[0], args[1]); err != nil {
				return fmt.Errorf("failed to store key: %w", err)
			}
			fmt.Printf("✓ Stored key for %q\n", args[0])
			return nil
		},
	}
}

func newKeysListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored keys (secrets are never printed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			records, err := ks.List()
			if err != nil {
				return fmt.Errorf("failed to list keys: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Println("No API keys stored.")
				return nil
			}
			for _, rec := range records {
				status := "active"
				if !rec.Active {
					status = "inactive"
				}
				fmt.Printf("  %-20s %-8s used %d times\n", rec.Service, status, rec.UsageCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func newKeysCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <service>",
		Short: "Check a key's health and bump its usage counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			health, err := ks.CheckHealth(args[0])
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Printf("Status: %s\n", health.Status)
			if health.LastUsed != "" {
				fmt.Printf("Last used: %s\n", health.LastUsed)
				fmt.Printf("Usage count: %d\n", health.UsageCount)
			}
			if health.Message != "" {
				fmt.Printf("Note: %s\n", health.Message)
			}
			return nil
		},
	}
}

func newKeysDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <service>",
		Aliases: []string{"rm"},
		Short:   "Delete the key for a service",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			if err := ks.Delete(args[0]); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}
			fmt.Printf("✓ Deleted key for %q\n", args[0])
			return nil
		},
	}
}

func newKeysDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show a usage summary of stored keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			summary, err := ks.Dashboard()
			if err != nil {
				return fmt.Errorf("failed to build dashboard: %w", err)
			}
			fmt.Println(summary)
			return nil
		},
	}
}
