/*
Package catalog implements the persistent API catalog.

The catalog is a single SQLite database (modernc.org/sqlite, CGo-free)
holding API records, their endpoints, one hashing embedding per record,
and an append-only search log. An optional full-text index is kept in
sync with the record table on every ingest.
*/
package catalog

// APIRecord is one cataloged third-party API as stored in the database.
// Identity is (Name, Host); Host is always a normalized hostname.
// Timestamps are RFC3339 UTC strings.
type APIRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Host        string `json:"host"`
	BaseURL     string `json:"base_url,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	DocsURL     string `json:"docs_url,omitempty"`
	OpenAPIURL  string `json:"openapi_url,omitempty"`
	Auth        string `json:"auth,omitempty"`
	RateLimit   string `json:"rate_limit,omitempty"`
	Status      string `json:"status,omitempty"`
	Source      string `json:"source,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Endpoint is one documented method+path pair belonging to a record.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// IngestRecord is the payload accepted by Ingest. Name and Host are
// required (Host may be derived from BaseURL); every other field is
// optional and, when empty, preserves the stored value on merge.
// Unknown JSON keys in a payload are ignored, not stored.
type IngestRecord struct {
	Name        string    `json:"name"`
	Host        string    `json:"host"`
	BaseURL     string    `json:"base_url"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	DocsURL     string    `json:"docs_url"`
	OpenAPIURL  string    `json:"openapi_url"`
	Auth        string    `json:"auth"`
	RateLimit   string    `json:"rate_limit"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	Endpoints   []Endpoint `json:"endpoints,omitempty"`
}

// Embedding is one stored record vector, kept 1:1 with APIRecord.
type Embedding struct {
	APIID  int64
	Dim    int
	Vector []float64
}

// SearchLogEntry is one append-only search log row.
type SearchLogEntry struct {
	ID    string `json:"id"`
	TS    string `json:"ts"`
	Query string `json:"query"`
}

// GroupCount is one (label, count) pair in the stats breakdowns,
// ordered by descending count.
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats is the read-side aggregation over the catalog and search log.
type Stats struct {
	TotalAPIs        int          `json:"total_apis"`
	ByCategory       []GroupCount `json:"by_category"`
	BySource         []GroupCount `json:"by_source"`
	SearchesLastWeek int          `json:"searches_last_week"`
	RecentSearches   []string     `json:"recent_searches"`
}

// ExportRecord is an APIRecord with its endpoints attached, as written
// by WriteExport.
type ExportRecord struct {
	APIRecord
	Endpoints []Endpoint `json:"endpoints"`
}

// Snapshot is the full external representation of the catalog.
type Snapshot struct {
	APIs []ExportRecord `json:"apis"`
}
