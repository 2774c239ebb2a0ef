package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const petstoreYAML = `
openapi: 3.0.0
info:
  title: Petstore
  description: A sample pet store API
servers:
  - url: https://petstore.example.com/v1
externalDocs:
  url: https://petstore.example.com/docs
paths:
  /pets:
    get:
      summary: List all pets
    post:
      summary: Create a pet
  /pets/{petId}:
    get:
      description: Info for a specific pet
`

func TestLoadSpecYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	if err := os.WriteFile(path, []byte(petstoreYAML), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	spec, err := loadSpec(path)
	if err != nil {
		t.Fatalf("loadSpec() failed: %v", err)
	}
	if spec["openapi"] != "3.0.0" {
		t.Errorf("openapi = %v, want 3.0.0", spec["openapi"])
	}
}

func TestLoadSpecJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	if err := os.WriteFile(path, []byte(`{"info":{"title":"Demo"}}`), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	spec, err := loadSpec(path)
	if err != nil {
		t.Fatalf("loadSpec() failed: %v", err)
	}
	if info, ok := spec["info"].(map[string]interface{}); !ok || info["title"] != "Demo" {
		t.Errorf("info = %v, want title Demo", spec["info"])
	}
}

func TestLoadSpecGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.txt")
	if err := os.WriteFile(path, []byte("::: not : a : spec\n\t{"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := loadSpec(path); err == nil {
		t.Error("loadSpec() on garbage succeeded")
	}
}

func TestRecordFromSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	if err := os.WriteFile(path, []byte(petstoreYAML), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	spec, err := loadSpec(path)
	if err != nil {
		t.Fatalf("loadSpec() failed: %v", err)
	}

	rec, err := recordFromSpec(spec, "https://petstore.example.com/openapi.yaml")
	if err != nil {
		t.Fatalf("recordFromSpec() failed: %v", err)
	}

	if rec.Name != "Petstore" {
		t.Errorf("Name = %q, want Petstore", rec.Name)
	}
	if rec.Host != "petstore.example.com" {
		t.Errorf("Host = %q, want petstore.example.com", rec.Host)
	}
	if rec.BaseURL != "https://petstore.example.com/v1" {
		t.Errorf("BaseURL = %q", rec.BaseURL)
	}
	if rec.Source != "install" {
		t.Errorf("Source = %q, want install", rec.Source)
	}
	if rec.OpenAPIURL != "https://petstore.example.com/openapi.yaml" {
		t.Errorf("OpenAPIURL = %q, want the URL source", rec.OpenAPIURL)
	}
	if rec.DocsURL != "https://petstore.example.com/docs" {
		t.Errorf("DocsURL = %q", rec.DocsURL)
	}

	if len(rec.Endpoints) != 3 {
		t.Fatalf("got %d endpoints, want 3", len(rec.Endpoints))
	}
	// Sorted by path then method
	if rec.Endpoints[0].Path != "/pets" || rec.Endpoints[0].Method != "get" {
		t.Errorf("first endpoint = %s %s, want get /pets", rec.Endpoints[0].Method, rec.Endpoints[0].Path)
	}
	if rec.Endpoints[0].Description != "List all pets" {
		t.Errorf("summary not used: %q", rec.Endpoints[0].Description)
	}
	if rec.Endpoints[2].Description != "Info for a specific pet" {
		t.Errorf("description fallback not used: %q", rec.Endpoints[2].Description)
	}
}

func TestRecordFromSpecLocalSource(t *testing.T) {
	spec := map[string]interface{}{
		"info": map[string]interface{}{"title": "Local"},
		"servers": []interface{}{
			map[string]interface{}{"url": "https://local.example.com"},
		},
	}

	rec, err := recordFromSpec(spec, "./local.yaml")
	if err != nil {
		t.Fatalf("recordFromSpec() failed: %v", err)
	}
	if rec.OpenAPIURL != "" {
		t.Errorf("OpenAPIURL = %q for a local file, want empty", rec.OpenAPIURL)
	}
}

func TestRecordFromSpecValidation(t *testing.T) {
	tests := []struct {
		name string
		spec map[string]interface{}
	}{
		{
			name: "no title",
			spec: map[string]interface{}{
				"servers": []interface{}{map[string]interface{}{"url": "https://x.example.com"}},
			},
		},
		{
			name: "no servers",
			spec: map[string]interface{}{
				"info": map[string]interface{}{"title": "NoServers"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := recordFromSpec(tt.spec, "spec.yaml"); err == nil {
				t.Error("recordFromSpec() succeeded, want error")
			}
		})
	}
}

func TestFirstServerURLStringForm(t *testing.T) {
	spec := map[string]interface{}{
		"servers": []interface{}{"https://bare.example.com"},
	}
	if got := firstServerURL(spec); got != "https://bare.example.com" {
		t.Errorf("firstServerURL() = %q", got)
	}
}
