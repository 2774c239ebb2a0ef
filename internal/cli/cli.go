/*
Package cli implements the apiscout command set.

Every command is thin glue: it loads configuration, opens the catalog
(and its full-text index), and delegates to the core packages. No
command holds state beyond its own run.
*/
package cli

import (
	"log"

	"github.com/apiscout/apiscout/internal/catalog"
	"github.com/apiscout/apiscout/internal/config"
	"github.com/apiscout/apiscout/internal/search"
)

// session bundles the opened catalog, index and engine for one command
// invocation.
type session struct {
	cfg     *config.Config
	store   *catalog.Store
	indexer *search.Indexer
	engine  *search.Engine
}

// openSession loads config and opens the catalog with its full-text
// index attached. A failed index open degrades to substring search
// rather than failing the command.
func openSession() (*session, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(dbPath, cfg.Settings.EmbeddingDim)
	if err != nil {
		return nil, err
	}

	var indexer *search.Indexer
	indexPath, err := cfg.IndexPath()
	if err == nil {
		indexer, err = search.NewIndexerWithPath(indexPath)
	}
	if err != nil {
		log.Printf("Warning: full-text index unavailable, falling back to substring search: %v", err)
		indexer = nil
	}
	if indexer != nil {
		if err := store.AttachIndex(indexer); err != nil {
			log.Printf("Warning: failed to attach full-text index: %v", err)
			indexer.Close()
			indexer = nil
		}
	}

	engine := search.NewEngine(store, indexer, search.Options{
		SemanticThreshold: cfg.Settings.SemanticThreshold,
		SearchLimit:       cfg.Settings.SearchLimit,
	})

	return &session{
		cfg:     cfg,
		store:   store,
		indexer: indexer,
		engine:  engine,
	}, nil
}

// Close releases the session's store and index.
func (s *session) Close() {
	if s.indexer != nil {
		if err := s.indexer.Close(); err != nil {
			log.Printf("Warning: failed to close index: %v", err)
		}
	}
	if err := s.store.Close(); err != nil {
		log.Printf("Warning: failed to close catalog: %v", err)
	}
}
