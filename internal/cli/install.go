package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apiscout/apiscout/internal/catalog"
	"github.com/apiscout/apiscout/internal/normalize"
)

// NewInstallCmd creates the 'install' command: derive a catalog record
// from an OpenAPI (or plain JSON/YAML) spec and ingest it.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <source>",
		Short: "Install an API into the catalog from an OpenAPI spec",
		Long: `Read an OpenAPI/JSON/YAML document from a local file or URL, derive a
catalog record from it (title, first server URL, description, paths)
and ingest it. The record merges with any existing entry of the same
(name, host) identity.`,
		Example: `  apiscout install ./petstore.yaml
  apiscout install https://petstore3.swagger.io/api/v3/openapi.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(args[0])
		},
	}

	return cmd
}

func runInstall(source string) error {
	spec, err := loadSpec(source)
	if err != nil {
		return err
	}

	rec, err := recordFromSpec(spec, source)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.store.Ingest(rec)
	if err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	fmt.Printf("✓ Installed %q (id=%d, %d endpoints)\n", rec.Name, id, len(rec.Endpoints))
	return nil
}

// loadSpec reads a spec document from a URL or a local file and parses
// it as JSON, falling back to YAML.
func loadSpec(source string) (map[string]interface{}, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, getErr := client.Get(source)
		if getErr != nil {
			return nil, fmt.Errorf("failed to fetch spec: %w", getErr)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch spec: %s", resp.Status)
		}
		data, err = io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read spec: %w", err)
	}

	var spec map[string]interface{}
	if jsonErr := json.Unmarshal(data, &spec); jsonErr != nil {
		if yamlErr := yaml.Unmarshal(data, &spec); yamlErr != nil {
			return nil, fmt.Errorf("spec is neither valid JSON (%v) nor YAML (%v)", jsonErr, yamlErr)
		}
	}
	return spec, nil
}

// recordFromSpec extracts a minimal catalog record from a parsed spec.
func recordFromSpec(spec map[string]interface{}, source string) (catalog.IngestRecord, error) {
	info, _ := spec["info"].(map[string]interface{})

	name := stringField(info, "title")
	if name == "" {
		name = stringField(spec, "name")
	}
	if name == "" {
		return catalog.IngestRecord{}, fmt.Errorf("spec has no info.title or name")
	}

	baseURL := firstServerURL(spec)
	host := normalize.Host(baseURL)
	if host == "" {
		return catalog.IngestRecord{}, fmt.Errorf("spec has no usable server URL to derive a host from")
	}

	rec := catalog.IngestRecord{
		Name:        name,
		Host:        host,
		BaseURL:     baseURL,
		Description: stringField(info, "description"),
		Source:      "install",
		Endpoints:   endpointsFromSpec(spec),
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		rec.OpenAPIURL = source
	}
	if docs, ok := spec["externalDocs"].(map[string]interface{}); ok {
		rec.DocsURL = stringField(docs, "url")
	}
	return rec, nil
}

// firstServerURL returns the url of the first entry in the spec's
// servers list, accepting both object and bare-string forms.
func firstServerURL(spec map[string]interface{}) string {
	servers, ok := spec["servers"].([]interface{})
	if !ok || len(servers) == 0 {
		return ""
	}
	switch first := servers[0].(type) {
	case map[string]interface{}:
		return stringField(first, "url")
	case string:
		return first
	}
	return ""
}

// endpointsFromSpec collects method+path pairs from the spec's paths
// object, using each operation's summary as the description.
func endpointsFromSpec(spec map[string]interface{}) []catalog.Endpoint {
	paths, ok := spec["paths"].(map[string]interface{})
	if !ok {
		return nil
	}

	methods := map[string]bool{
		"get": true, "post": true, "put": true, "patch": true,
		"delete": true, "head": true, "options": true,
	}

	var endpoints []catalog.Endpoint
	for path, raw := range paths {
		ops, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		for method, opRaw := range ops {
			if !methods[strings.ToLower(method)] {
				continue
			}
			desc := ""
			if op, ok := opRaw.(map[string]interface{}); ok {
				desc = stringField(op, "summary")
				if desc == "" {
					desc = stringField(op, "description")
				}
			}
			endpoints = append(endpoints, catalog.Endpoint{
				Method:      method,
				Path:        path,
				Description: desc,
			})
		}
	}

	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Path != endpoints[j].Path {
			return endpoints[i].Path < endpoints[j].Path
		}
		return endpoints[i].Method < endpoints[j].Method
	})
	return endpoints
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
