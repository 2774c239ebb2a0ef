package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/apiscout/apiscout/internal/normalize"
)

const recordColumns = `id, name, host, base_url, description, category,
	docs_url, openapi_url, auth, rate_limit, status, source,
	created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (APIRecord, error) {
	var rec APIRecord
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Host, &rec.BaseURL, &rec.Description,
		&rec.Category, &rec.DocsURL, &rec.OpenAPIURL, &rec.Auth,
		&rec.RateLimit, &rec.Status, &rec.Source,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return APIRecord{}, ErrNotFound
	}
	if err != nil {
		return APIRecord{}, err
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]APIRecord, error) {
	defer rows.Close()

	var recs []APIRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetAPI fetches a record by id. Returns ErrNotFound when absent.
func (s *Store) GetAPI(id int64) (APIRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow("SELECT "+recordColumns+" FROM apis WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return APIRecord{}, storageErr("get api", err)
	}
	return rec, err
}

// GetByNameHost fetches a record by its (name, host) identity. The
// host is normalized before lookup. An empty host looks up by name
// alone, which fails if the name exists on more than one host.
func (s *Store) GetByNameHost(name, host string) (APIRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if host == "" {
		rows, err := s.db.Query("SELECT "+recordColumns+" FROM apis WHERE name = ?", name)
		if err != nil {
			return APIRecord{}, storageErr("get api", err)
		}
		recs, err := collectRecords(rows)
		if err != nil {
			return APIRecord{}, storageErr("get api", err)
		}
		switch len(recs) {
		case 0:
			return APIRecord{}, ErrNotFound
		case 1:
			return recs[0], nil
		default:
			return APIRecord{}, fmt.Errorf("%q exists on %d hosts, specify one", name, len(recs))
		}
	}

	row := s.db.QueryRow(
		"SELECT "+recordColumns+" FROM apis WHERE name = ? AND host = ?",
		name, normalize.Host(host),
	)
	rec, err := scanRecord(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return APIRecord{}, storageErr("get api", err)
	}
	return rec, err
}

// APIsByIDs fetches records for the given ids, preserving the order of
// ids. Unknown ids are skipped.
func (s *Store) APIsByIDs(ids []int64) ([]APIRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		"SELECT "+recordColumns+" FROM apis WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, storageErr("get apis", err)
	}
	recs, err := collectRecords(rows)
	if err != nil {
		return nil, storageErr("get apis", err)
	}

	byID := make(map[int64]APIRecord, len(recs))
	for _, rec := range recs {
		byID[rec.ID] = rec
	}

	ordered := make([]APIRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			ordered = append(ordered, rec)
		}
	}
	return ordered, nil
}

// ListAPIs returns every record ordered by name.
func (s *Store) ListAPIs() ([]APIRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT " + recordColumns + " FROM apis ORDER BY name")
	if err != nil {
		return nil, storageErr("list apis", err)
	}
	recs, err := collectRecords(rows)
	if err != nil {
		return nil, storageErr("list apis", err)
	}
	return recs, nil
}

// CountAPIs returns the total number of records.
func (s *Store) CountAPIs() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM apis").Scan(&n); err != nil {
		return 0, storageErr("count apis", err)
	}
	return n, nil
}

// GetEndpoints returns a record's endpoints ordered by method, then
// path. An unknown id yields an empty list, not an error.
func (s *Store) GetEndpoints(apiID int64) ([]Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT method, path, description FROM endpoints
		WHERE api_id = ?
		ORDER BY method, path
	`, apiID)
	if err != nil {
		return nil, storageErr("get endpoints", err)
	}
	defer rows.Close()

	endpoints := []Endpoint{}
	for rows.Next() {
		var ep Endpoint
		if err := rows.Scan(&ep.Method, &ep.Path, &ep.Description); err != nil {
			return nil, storageErr("get endpoints", err)
		}
		endpoints = append(endpoints, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get endpoints", err)
	}
	return endpoints, nil
}

// EndpointsByNameHost resolves a record by identity and lists its
// endpoints. An unknown identity yields an empty list.
func (s *Store) EndpointsByNameHost(name, host string) ([]Endpoint, error) {
	rec, err := s.GetByNameHost(name, host)
	if errors.Is(err, ErrNotFound) {
		return []Endpoint{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.GetEndpoints(rec.ID)
}

// DeleteAPI removes a record. Endpoints and the embedding cascade with
// it, and the full-text entry is dropped from the attached index.
func (s *Store) DeleteAPI(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM apis WHERE id = ?", id)
	if err != nil {
		return storageErr("delete api", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete api", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if s.fts != nil {
		if err := s.fts.Delete(id); err != nil {
			return storageErr("delete index entry", err)
		}
	}
	return nil
}

// SubstringSearch is the non-indexed text lookup: case-insensitive
// substring matching across name, description and category, preserving
// storage order. It is the fallback used when no full-text index is
// available.
func (s *Store) SubstringSearch(query string, limit int) ([]APIRecord, error) {
	if limit <= 0 {
		limit = 25
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	like := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM apis
		WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?
		ORDER BY id
		LIMIT ?
	`, recordColumns), like, like, like, limit)
	if err != nil {
		return nil, storageErr("text search", err)
	}
	recs, err := collectRecords(rows)
	if err != nil {
		return nil, storageErr("text search", err)
	}
	return recs, nil
}

// AllEmbeddings returns every stored record vector in storage order.
func (s *Store) AllEmbeddings() ([]Embedding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT api_id, dim, vector FROM embeddings ORDER BY api_id")
	if err != nil {
		return nil, storageErr("load embeddings", err)
	}
	defer rows.Close()

	var embs []Embedding
	for rows.Next() {
		var emb Embedding
		var vecJSON string
		if err := rows.Scan(&emb.APIID, &emb.Dim, &vecJSON); err != nil {
			return nil, storageErr("load embeddings", err)
		}
		vec, err := jsonToVector(vecJSON)
		if err != nil {
			return nil, storageErr("load embeddings", err)
		}
		emb.Vector = vec
		embs = append(embs, emb)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("load embeddings", err)
	}
	return embs, nil
}
