package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// NewExportCmd creates the 'export' command.
func NewExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a JSON snapshot",
		Long: `Write every catalog record, with its endpoints, to a JSON file.

The snapshot is the same shape 'apiscout update' merges back in, so
export/update is a full backup/restore round trip.`,
		Example: `  # Export to ./apis.json
  apiscout export

  # Custom output path
  apiscout export --output ./backup/apis.json

jq usage examples:
  # List all hosts
  jq -r '.apis[].host' apis.json

  # Count records per category
  jq -r '.apis[].category' apis.json | sort | uniq -c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "apis.json", "Output path")

	return cmd
}

func runExport(output string) error {
	// Lock so concurrent exports cannot interleave on the same file
	lockFile, err := acquireFileLock(output)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer releaseFileLock(lockFile)

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	path, err := sess.store.WriteExport(output)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	count, err := sess.store.CountAPIs()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d APIs to %s\n", count, path)
	return nil
}

// acquireFileLock acquires an exclusive lock next to the export file.
func acquireFileLock(path string) (*os.File, error) {
	lockPath := path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	// Non-blocking: a held lock means another export is in progress
	err = unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		lockFile.Close()
		return nil, fmt.Errorf("failed to acquire lock (another export in progress?): %w", err)
	}

	return lockFile, nil
}

// releaseFileLock releases the file lock and removes the lock file.
func releaseFileLock(lockFile *os.File) error {
	if lockFile == nil {
		return nil
	}

	lockPath := lockFile.Name()

	unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	lockFile.Close()

	return os.Remove(lockPath)
}
