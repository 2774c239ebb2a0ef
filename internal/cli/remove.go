package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/catalog"
)

// NewRemoveCmd creates the 'remove' command for deleting catalog records.
func NewRemoveCmd() *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an API from the catalog",
		Long: `Delete a catalog record by name. Its endpoints, embedding and
full-text entry are removed with it. Pass --host to disambiguate when
the same name exists on several hosts.`,
		Example: `  apiscout remove "NASA Open APIs"
  apiscout rm "NASA Open APIs" --host api.nasa.gov`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args[0], host)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Disambiguate by host")

	return cmd
}

func runRemove(name, host string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	rec, err := sess.store.GetByNameHost(name, host)
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("API %q not found", name)
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if err := sess.store.DeleteAPI(rec.ID); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}

	fmt.Printf("✓ Removed %q (%s)\n", rec.Name, rec.Host)
	return nil
}
