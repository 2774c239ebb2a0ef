package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/index/scorch"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/apiscout/apiscout/internal/catalog"
)

// Indexer maintains the full-text index over API records. It satisfies
// catalog.FullTextIndex, so the store can update it in lockstep with
// every record write.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewIndexer creates an in-memory index. Used by tests and by the
// fallback path when no index directory is configured.
func NewIndexer() (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Indexer{bleveIndex: index}, nil
}

// NewIndexerWithPath opens or creates a persistent index at indexPath
// using the scorch backend.
func NewIndexerWithPath(indexPath string) (*Indexer, error) {
	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	index, err := bleve.NewUsing(indexPath, buildIndexMapping(), scorch.Name, scorch.Name, nil)
	if err != nil {
		index, err = bleve.Open(indexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open/create index: %w", err)
		}
	}

	return &Indexer{bleveIndex: index}, nil
}

// buildIndexMapping maps the searchable record fields.
func buildIndexMapping() mapping.IndexMapping {
	recordMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	recordMapping.AddFieldMappingsAt("name", nameFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	recordMapping.AddFieldMappingsAt("description", descFieldMapping)

	categoryFieldMapping := bleve.NewTextFieldMapping()
	recordMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// Host is stored for display but not tokenized into the index.
	hostFieldMapping := bleve.NewTextFieldMapping()
	hostFieldMapping.Index = false
	hostFieldMapping.IncludeInAll = false
	recordMapping.AddFieldMappingsAt("host", hostFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", recordMapping)

	return indexMapping
}

// Index adds or replaces the entry for a record.
func (i *Indexer) Index(rec catalog.APIRecord) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	doc := map[string]interface{}{
		"name":        rec.Name,
		"description": rec.Description,
		"category":    rec.Category,
		"host":        rec.Host,
	}

	if err := i.bleveIndex.Index(docID(rec.ID), doc); err != nil {
		return fmt.Errorf("failed to index record %d: %w", rec.ID, err)
	}
	return nil
}

// Delete removes the entry for a record id.
func (i *Indexer) Delete(id int64) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.bleveIndex.Delete(docID(id)); err != nil {
		return fmt.Errorf("failed to delete record %d from index: %w", id, err)
	}
	return nil
}

// Count returns the total number of indexed records.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return docCount, nil
}

// Query runs a match query against the index and returns the record
// ids of the hits in the index's native ranking order.
func (i *Indexer) Query(searchText string, limit int) ([]int64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = 25
	}

	query := bleve.NewMatchQuery(searchText)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)

	results, err := i.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	ids := make([]int64, 0, len(results.Hits))
	for _, hit := range results.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}
	return nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
