package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/catalog"
)

// NewIngestCmd creates the 'ingest' command for adding or merging one
// record.
//
// Supports two modes:
// 1. Flags: specify the record fields directly
// 2. JSON: pass a full record payload (the export format)
func NewIngestCmd() *cobra.Command {
	var rec catalog.IngestRecord
	var jsonInput string
	var jsonFile string
	var endpointSpecs []string

	cmd := &cobra.Command{
		Use:     "ingest [name]",
		Aliases: []string{"add"},
		Short:   "Add or merge an API record",
		Long: `Add an API record to the catalog, or merge into an existing one.

Records are identified by (name, host); the host may be given directly
or derived from --base-url. Re-ingesting the same identity merges:
non-empty incoming fields overwrite, omitted fields keep their stored
values. The embedding and full-text entry are regenerated on every
ingest.`,
		Example: `  # Flag mode
  apiscout ingest "NASA Open APIs" --host api.nasa.gov \
      --description "Space imagery and data" --category space

  # Endpoint syntax is METHOD PATH -- DESCRIPTION
  apiscout ingest "NASA Open APIs" --host api.nasa.gov \
      --endpoint "GET /planetary/apod -- Astronomy picture of the day"

  # JSON mode (same shape as the export file)
  apiscout ingest --json '{"name":"GovInfo","host":"api.govinfo.gov"}'
  apiscout ingest --file record.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonInput != "" || jsonFile != "" {
				return runIngestJSON(jsonInput, jsonFile)
			}
			if len(args) == 0 {
				return fmt.Errorf("record name required (or use --json/--file)")
			}
			rec.Name = args[0]
			endpoints, err := parseEndpointSpecs(endpointSpecs)
			if err != nil {
				return err
			}
			rec.Endpoints = endpoints
			return runIngest(rec)
		},
	}

	cmd.Flags().StringVar(&rec.Host, "host", "", "API hostname (derived from --base-url when omitted)")
	cmd.Flags().StringVar(&rec.BaseURL, "base-url", "", "Base URL")
	cmd.Flags().StringVarP(&rec.Description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&rec.Category, "category", "c", "", "Category")
	cmd.Flags().StringVar(&rec.DocsURL, "docs-url", "", "Documentation URL")
	cmd.Flags().StringVar(&rec.OpenAPIURL, "openapi-url", "", "Machine-readable spec URL")
	cmd.Flags().StringVar(&rec.Auth, "auth", "", "Authentication scheme tag (default: none)")
	cmd.Flags().StringVar(&rec.RateLimit, "rate-limit", "", "Rate limit description")
	cmd.Flags().StringVar(&rec.Status, "status", "", "Lifecycle status (default: unknown)")
	cmd.Flags().StringVar(&rec.Source, "source", "", "Provenance source tag")
	cmd.Flags().StringArrayVar(&endpointSpecs, "endpoint", nil, "Endpoint as 'METHOD PATH -- DESCRIPTION' (repeatable)")

	return cmd
}

func runIngest(rec catalog.IngestRecord) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.store.Ingest(rec)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("✓ Ingested %q (id=%d)\n", rec.Name, id)
	return nil
}

func runIngestJSON(jsonInput, jsonFile string) error {
	data := []byte(jsonInput)
	if jsonFile != "" {
		var err error
		data, err = os.ReadFile(jsonFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", jsonFile, err)
		}
	}

	var rec catalog.IngestRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to parse record JSON: %w", err)
	}
	return runIngest(rec)
}

// parseEndpointSpecs parses "METHOD PATH -- DESCRIPTION" flag values.
func parseEndpointSpecs(specs []string) ([]catalog.Endpoint, error) {
	var endpoints []catalog.Endpoint
	for _, spec := range specs {
		desc := ""
		head := spec
		if idx := strings.Index(spec, "--"); idx >= 0 {
			head = spec[:idx]
			desc = strings.TrimSpace(spec[idx+2:])
		}
		fields := strings.Fields(head)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid endpoint %q: want 'METHOD PATH -- DESCRIPTION'", spec)
		}
		endpoints = append(endpoints, catalog.Endpoint{
			Method:      fields[0],
			Path:        fields[1],
			Description: desc,
		})
	}
	return endpoints, nil
}
