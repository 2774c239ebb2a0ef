/*
Package benchmark measures catalog ingest and search performance.

It ingests a batch of synthetic API records into a store and times
repeated searches, reporting per-operation latency for the text and
semantic paths. Used by the bench command to sanity-check that the
catalog stays comfortably interactive at realistic sizes.
*/
package benchmark

import (
	"fmt"
	"time"

	"github.com/apiscout/apiscout/internal/catalog"
	"github.com/apiscout/apiscout/internal/search"
)

// Result contains timing results for one benchmark run.
type Result struct {
	Records        int           `json:"records"`
	IngestTotal    time.Duration `json:"ingestTotal"`
	IngestPerOp    time.Duration `json:"ingestPerOp"`
	Searches       int           `json:"searches"`
	SearchTotal    time.Duration `json:"searchTotal"`
	SearchPerQuery time.Duration `json:"searchPerQuery"`
}

// sample categories and description fragments for synthetic records.
var (
	categories = []string{"weather", "space", "finance", "geo", "media"}
	fragments  = []string{
		"forecast and observation data",
		"imagery and telemetry archives",
		"market quotes and exchange rates",
		"geocoding and routing lookups",
		"search over published media",
	}
	queries = []string{"weather", "space imagery", "exchange rates", "routing", "media search"}
)

// Run ingests n synthetic records into store and times rounds queries
// through engine.
func Run(store *catalog.Store, engine *search.Engine, n, rounds int) (Result, error) {
	if n <= 0 {
		n = 100
	}
	if rounds <= 0 {
		rounds = 20
	}

	res := Result{Records: n}

	start := time.Now()
	for i := 0; i < n; i++ {
		rec := catalog.IngestRecord{
			Name:        fmt.Sprintf("Bench API %04d", i),
			Host:        fmt.Sprintf("api-%04d.bench.example", i),
			BaseURL:     fmt.Sprintf("https://api-%04d.bench.example", i),
			Description: fragments[i%len(fragments)],
			Category:    categories[i%len(categories)],
			Source:      "bench",
		}
		if _, err := store.Ingest(rec); err != nil {
			return Result{}, fmt.Errorf("ingest %d: %w", i, err)
		}
	}
	res.IngestTotal = time.Since(start)
	res.IngestPerOp = res.IngestTotal / time.Duration(n)

	start = time.Now()
	for i := 0; i < rounds; i++ {
		if _, err := engine.Search(queries[i%len(queries)]); err != nil {
			return Result{}, fmt.Errorf("search %d: %w", i, err)
		}
	}
	res.Searches = rounds
	res.SearchTotal = time.Since(start)
	res.SearchPerQuery = res.SearchTotal / time.Duration(rounds)

	return res, nil
}

// Format renders a result for terminal display.
func Format(res Result) string {
	return fmt.Sprintf(
		"Ingested %d records in %v (%v/record)\nRan %d searches in %v (%v/query)",
		res.Records, res.IngestTotal.Round(time.Millisecond), res.IngestPerOp.Round(time.Microsecond),
		res.Searches, res.SearchTotal.Round(time.Millisecond), res.SearchPerQuery.Round(time.Microsecond),
	)
}
