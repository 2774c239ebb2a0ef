package catalog

import (
	"time"

	"github.com/google/uuid"
)

// recentWindow is the lookback used for the search-activity counter.
const recentWindow = 7 * 24 * time.Hour

// LogSearch appends a query to the search log. Entries are never
// updated or deleted; they exist only for read-side aggregation.
func (s *Store) LogSearch(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO search_log (id, ts, query) VALUES (?, ?, ?)",
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339),
		query,
	)
	return storageErr("log search", err)
}

// RecentSearches returns up to n most recent query strings, newest first.
func (s *Store) RecentSearches(n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recentSearchesLocked(n)
}

func (s *Store) recentSearchesLocked(n int) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT query FROM search_log ORDER BY ts DESC, rowid DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, storageErr("recent searches", err)
	}
	defer rows.Close()

	queries := []string{}
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, storageErr("recent searches", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// SearchesSince counts log entries with a timestamp at or after t.
// RFC3339 UTC timestamps compare correctly as strings.
func (s *Store) SearchesSince(t time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.searchesSinceLocked(t)
}

func (s *Store) searchesSinceLocked(t time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM search_log WHERE ts >= ?",
		t.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, storageErr("count searches", err)
	}
	return n, nil
}

// Stats aggregates the catalog and search log for display: total record
// count, per-category and per-source counts (descending), search count
// over the last 7 days, and the 5 most recent queries.
func (s *Store) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats

	if err := s.db.QueryRow("SELECT COUNT(*) FROM apis").Scan(&stats.TotalAPIs); err != nil {
		return Stats{}, storageErr("stats", err)
	}

	var err error
	stats.ByCategory, err = s.groupCounts("category", "uncategorized")
	if err != nil {
		return Stats{}, err
	}
	stats.BySource, err = s.groupCounts("source", "unknown")
	if err != nil {
		return Stats{}, err
	}

	stats.SearchesLastWeek, err = s.searchesSinceLocked(time.Now().Add(-recentWindow))
	if err != nil {
		return Stats{}, err
	}

	stats.RecentSearches, err = s.recentSearchesLocked(5)
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}

// groupCounts counts records grouped by column, substituting fallback
// for unset values, ordered by descending count then label.
func (s *Store) groupCounts(column, fallback string) ([]GroupCount, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(NULLIF(` + column + `, ''), ?) AS k, COUNT(*) AS c
		FROM apis
		GROUP BY k
		ORDER BY c DESC, k ASC
	`, fallback)
	if err != nil {
		return nil, storageErr("stats "+column, err)
	}
	defer rows.Close()

	counts := []GroupCount{}
	for rows.Next() {
		var gc GroupCount
		if err := rows.Scan(&gc.Name, &gc.Count); err != nil {
			return nil, storageErr("stats "+column, err)
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}
