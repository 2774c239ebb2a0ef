package cli

import (
	"strings"
	"testing"
)

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if cmd == nil {
		t.Fatal("NewIngestCmd() returned nil")
	}
	if cmd.Use != "ingest [name]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ingest [name]")
	}

	hasAdd := false
	for _, alias := range cmd.Aliases {
		if alias == "add" {
			hasAdd = true
		}
	}
	if !hasAdd {
		t.Error("missing 'add' alias")
	}
}

func TestIngestCommandFlags(t *testing.T) {
	cmd := NewIngestCmd()

	requiredFlags := []string{
		"host", "base-url", "description", "category", "docs-url",
		"openapi-url", "auth", "rate-limit", "status", "source", "endpoint",
	}
	for _, flag := range requiredFlags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Flag %q not registered", flag)
		}
	}
}

func TestIngestRequiresName(t *testing.T) {
	cmd := NewIngestCmd()
	cmd.SetArgs([]string{"--host", "api.nasa.gov"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute() without name succeeded")
	}
	if !strings.Contains(err.Error(), "record name required") {
		t.Errorf("error = %v, want name-required message", err)
	}
}

func TestParseEndpointSpecs(t *testing.T) {
	tests := []struct {
		name      string
		specs     []string
		wantErr   bool
		wantLen   int
		firstDesc string
	}{
		{
			name:    "empty",
			specs:   nil,
			wantLen: 0,
		},
		{
			name:      "method path and description",
			specs:     []string{"GET /planetary/apod -- Astronomy picture of the day"},
			wantLen:   1,
			firstDesc: "Astronomy picture of the day",
		},
		{
			name:    "no description",
			specs:   []string{"POST /data"},
			wantLen: 1,
		},
		{
			name:      "multiple",
			specs:     []string{"GET /a -- one", "DELETE /b -- two"},
			wantLen:   2,
			firstDesc: "one",
		},
		{
			name:    "missing path",
			specs:   []string{"GET"},
			wantErr: true,
		},
		{
			name:    "too many fields",
			specs:   []string{"GET /a /b"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, err := parseEndpointSpecs(tt.specs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEndpointSpecs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(endpoints) != tt.wantLen {
				t.Fatalf("got %d endpoints, want %d", len(endpoints), tt.wantLen)
			}
			if tt.firstDesc != "" && endpoints[0].Description != tt.firstDesc {
				t.Errorf("description = %q, want %q", endpoints[0].Description, tt.firstDesc)
			}
		})
	}
}
