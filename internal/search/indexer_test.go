package search

import (
	"path/filepath"
	"testing"

	"github.com/apiscout/apiscout/internal/catalog"
)

func newTestIndexer(t *testing.T) *Indexer {
	t.Helper()

	indexer, err := NewIndexer()
	if err != nil {
		t.Fatalf("NewIndexer() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := indexer.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return indexer
}

func TestIndexerIndexAndQuery(t *testing.T) {
	indexer := newTestIndexer(t)

	records := []catalog.APIRecord{
		{ID: 1, Name: "NASA Open APIs", Description: "Space imagery and data", Category: "space", Host: "api.nasa.gov"},
		{ID: 2, Name: "Weather Service", Description: "forecast and observation data", Category: "weather", Host: "api.weather.example"},
	}
	for _, rec := range records {
		if err := indexer.Index(rec); err != nil {
			t.Fatalf("Index(%d) failed: %v", rec.ID, err)
		}
	}

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	ids, err := indexer.Query("space", 10)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("Query(space) = %v, want [1]", ids)
	}

	// Description terms are searchable too
	ids, err = indexer.Query("forecast", 10)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("Query(forecast) = %v, want [2]", ids)
	}

	// Host is stored but not indexed: "example" only occurs in a host
	ids, err = indexer.Query("example", 10)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("host terms leaked into the index: %v", ids)
	}
}

func TestIndexerReindexReplaces(t *testing.T) {
	indexer := newTestIndexer(t)

	rec := catalog.APIRecord{ID: 1, Name: "NASA Open APIs", Description: "Space imagery and data"}
	if err := indexer.Index(rec); err != nil {
		t.Fatalf("Index() failed: %v", err)
	}

	rec.Description = "forecast archives"
	if err := indexer.Index(rec); err != nil {
		t.Fatalf("re-Index() failed: %v", err)
	}

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("re-index duplicated document: Count() = %d", count)
	}

	ids, err := indexer.Query("imagery", 10)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("stale terms still indexed: Query(imagery) = %v", ids)
	}
}

func TestIndexerDelete(t *testing.T) {
	indexer := newTestIndexer(t)

	if err := indexer.Index(catalog.APIRecord{ID: 1, Name: "NASA Open APIs", Category: "space"}); err != nil {
		t.Fatalf("Index() failed: %v", err)
	}
	if err := indexer.Delete(1); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	ids, err := indexer.Query("space", 10)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("deleted record still queryable: %v", ids)
	}
}

func TestIndexerQueryLimit(t *testing.T) {
	indexer := newTestIndexer(t)

	for i := int64(1); i <= 10; i++ {
		rec := catalog.APIRecord{ID: i, Name: "Weather Service", Category: "weather"}
		if err := indexer.Index(rec); err != nil {
			t.Fatalf("Index(%d) failed: %v", i, err)
		}
	}

	ids, err := indexer.Query("weather", 3)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("Query() returned %d hits, want limit 3", len(ids))
	}
}

func TestIndexerWithPathPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index.bleve")

	indexer, err := NewIndexerWithPath(dir)
	if err != nil {
		t.Fatalf("NewIndexerWithPath() failed: %v", err)
	}
	if err := indexer.Index(catalog.APIRecord{ID: 1, Name: "NASA Open APIs", Category: "space"}); err != nil {
		t.Fatalf("Index() failed: %v", err)
	}
	if err := indexer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := NewIndexerWithPath(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	ids, err := reopened.Query("space", 10)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("persisted index lost data: Query(space) = %v", ids)
	}
}
