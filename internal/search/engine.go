package search

import (
	"log"
	"sort"
	"strings"

	"github.com/apiscout/apiscout/internal/catalog"
	"github.com/apiscout/apiscout/internal/embed"
)

// Options tunes the search engine. The defaults mirror the observed
// behavior of the catalog: similarity threshold 0.2, 25 results per
// bucket.
type Options struct {
	// SemanticThreshold is the minimum cosine similarity for a record
	// to appear in the semantic bucket.
	SemanticThreshold float64
	// SearchLimit caps each result bucket.
	SearchLimit int
}

// DefaultOptions returns the standard engine tuning.
func DefaultOptions() Options {
	return Options{
		SemanticThreshold: 0.2,
		SearchLimit:       25,
	}
}

// Engine answers queries against the catalog. Its only state mutation
// is the search-log append performed on every call.
type Engine struct {
	store    *catalog.Store
	indexer  *Indexer
	embedder *embed.Embedder
	opts     Options
}

// NewEngine creates a search engine over store. indexer may be nil, in
// which case text lookup uses the substring fallback.
func NewEngine(store *catalog.Store, indexer *Indexer, opts Options) *Engine {
	if opts.SemanticThreshold == 0 {
		opts.SemanticThreshold = DefaultOptions().SemanticThreshold
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultOptions().SearchLimit
	}
	return &Engine{
		store:    store,
		indexer:  indexer,
		embedder: store.Embedder(),
		opts:     opts,
	}
}

// Search runs a query and returns the text and semantic buckets.
//
// An empty or whitespace-only query is rejected with a ValidationError
// before the search log is touched. A non-empty query always appends
// exactly one log entry, even when both buckets come back empty.
func (e *Engine) Search(query string) (Results, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Results{}, &catalog.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	if err := e.store.LogSearch(q); err != nil {
		return Results{}, err
	}

	text, err := e.textSearch(q)
	if err != nil {
		return Results{}, err
	}

	semantic, err := e.semanticSearch(q)
	if err != nil {
		return Results{}, err
	}

	return Results{Text: text, Semantic: semantic}, nil
}

// textSearch runs the full-text lookup, falling back to substring
// matching when no index is attached or the index query fails.
func (e *Engine) textSearch(query string) ([]Match, error) {
	if e.indexer != nil {
		ids, err := e.indexer.Query(query, e.opts.SearchLimit)
		if err == nil {
			recs, err := e.store.APIsByIDs(ids)
			if err != nil {
				return nil, err
			}
			return toMatches(recs, nil), nil
		}
		log.Printf("Warning: full-text query failed, using substring fallback: %v", err)
	}

	recs, err := e.store.SubstringSearch(query, e.opts.SearchLimit)
	if err != nil {
		return nil, err
	}
	return toMatches(recs, nil), nil
}

// semanticSearch embeds the query and ranks every stored record vector
// by dot product (cosine similarity, both sides pre-normalized).
// Records below the threshold are dropped; ties keep storage order.
func (e *Engine) semanticSearch(query string) ([]Match, error) {
	queryVec := e.embedder.Embed(query)

	embs, err := e.store.AllEmbeddings()
	if err != nil {
		return nil, err
	}

	type scored struct {
		id    int64
		score float64
	}
	hits := make([]scored, 0, len(embs))
	for _, emb := range embs {
		score := embed.Dot(queryVec, emb.Vector)
		if score >= e.opts.SemanticThreshold {
			hits = append(hits, scored{id: emb.APIID, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > e.opts.SearchLimit {
		hits = hits[:e.opts.SearchLimit]
	}

	ids := make([]int64, len(hits))
	scores := make(map[int64]float64, len(hits))
	for i, h := range hits {
		ids[i] = h.id
		scores[h.id] = h.score
	}

	recs, err := e.store.APIsByIDs(ids)
	if err != nil {
		return nil, err
	}
	return toMatches(recs, scores), nil
}

// toMatches converts records to display matches, attaching scores when
// provided.
func toMatches(recs []catalog.APIRecord, scores map[int64]float64) []Match {
	matches := make([]Match, 0, len(recs))
	for _, rec := range recs {
		matches = append(matches, matchFromRecord(rec, scores[rec.ID]))
	}
	return matches
}
