package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apiscout/apiscout/internal/catalog"
	"github.com/apiscout/apiscout/internal/search"
)

func newTestServer(t *testing.T) (*catalog.Store, http.Handler) {
	t.Helper()

	store, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"), 256)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	indexer, err := search.NewIndexer()
	if err != nil {
		t.Fatalf("NewIndexer() failed: %v", err)
	}
	t.Cleanup(func() { indexer.Close() })

	if err := store.AttachIndex(indexer); err != nil {
		t.Fatalf("AttachIndex() failed: %v", err)
	}

	engine := search.NewEngine(store, indexer, search.DefaultOptions())
	server := NewServer(store, engine, ":0")
	return store, server.Handler()
}

func TestHealthEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
	if body["timestamp"] == "" || body["version"] == "" {
		t.Errorf("body missing timestamp/version: %v", body)
	}
}

func TestSearchEndpoint(t *testing.T) {
	store, handler := newTestServer(t)

	if _, err := store.Ingest(catalog.IngestRecord{
		Name:        "NASA Open APIs",
		Host:        "api.nasa.gov",
		Description: "Space imagery and data",
		Category:    "space",
	}); err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"space"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/search = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var results struct {
		Text     []json.RawMessage `json:"text"`
		Semantic []json.RawMessage `json:"semantic"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(results.Text) == 0 {
		t.Error("text bucket empty for a matching query")
	}
	if len(results.Semantic) == 0 {
		t.Error("semantic bucket empty for a matching query")
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	_, handler := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"empty object", "{}"},
		{"blank query", `{"query":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != "missing query" {
				t.Errorf("error = %q, want %q", body["error"], "missing query")
			}
		})
	}
}

func TestSearchEndpointMethod(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/search = %d, want 405", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	store, handler := newTestServer(t)

	if _, err := store.Ingest(catalog.IngestRecord{
		Name:     "NASA Open APIs",
		Host:     "api.nasa.gov",
		Category: "space",
	}); err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/stats = %d, want 200", rec.Code)
	}

	var stats catalog.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if stats.TotalAPIs != 1 {
		t.Errorf("total_apis = %d, want 1", stats.TotalAPIs)
	}
	if len(stats.ByCategory) != 1 || stats.ByCategory[0].Name != "space" {
		t.Errorf("by_category = %v, want [space:1]", stats.ByCategory)
	}
}

func TestIndexPage(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", rec.Code)
	}
}
