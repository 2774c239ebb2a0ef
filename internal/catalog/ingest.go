package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/apiscout/apiscout/internal/normalize"
)

// Ingest inserts or merges a record identified by (name, normalized host)
// and returns its durable id.
//
// Merge policy: incoming non-empty fields overwrite stored values;
// incoming empty fields preserve them; updated_at always refreshes.
// Endpoints in the payload are upserted by (record, method, path) with
// the description overwritten. The record's embedding and full-text
// entry are regenerated unconditionally.
//
// Record, endpoints and embedding are written in a single transaction;
// the full-text index is updated before commit so that a failed index
// write fails the whole ingest with no partial state.
func (s *Store) Ingest(rec IngestRecord) (int64, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return 0, &ValidationError{Field: "name", Reason: "required"}
	}
	host := normalize.Host(rec.Host)
	if host == "" {
		host = normalize.Host(rec.BaseURL)
	}
	if host == "" {
		return 0, &ValidationError{Field: "host", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageErr("ingest", err)
	}
	defer tx.Rollback()

	merged, err := mergeExisting(tx, rec, name, host, now)
	if err != nil {
		return 0, storageErr("ingest", err)
	}

	id, err := writeRecord(tx, merged)
	if err != nil {
		return 0, storageErr("ingest", err)
	}
	merged.ID = id

	if err := upsertEndpoints(tx, id, rec.Endpoints); err != nil {
		return 0, storageErr("ingest endpoints", err)
	}

	if err := s.writeEmbedding(tx, id, merged.Name, merged.Description); err != nil {
		return 0, storageErr("ingest embedding", err)
	}

	if s.fts != nil {
		if err := s.fts.Index(merged); err != nil {
			// Rollback via defer: the record write is abandoned rather
			// than committed without its index entry.
			return 0, storageErr("ingest index", err)
		}
	}

	if err := tx.Commit(); err != nil {
		if s.fts != nil {
			if delErr := s.fts.Delete(id); delErr != nil {
				log.Printf("Warning: failed to unwind index entry %d: %v", id, delErr)
			}
		}
		return 0, storageErr("ingest commit", err)
	}

	return id, nil
}

// mergeExisting loads the stored record for (name, host), if any, and
// overlays the non-empty fields of the incoming payload.
func mergeExisting(tx *sql.Tx, rec IngestRecord, name, host, now string) (APIRecord, error) {
	existing, err := recordByIdentity(tx, name, host)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return APIRecord{}, err
	}

	if errors.Is(err, ErrNotFound) {
		existing = APIRecord{
			Name:      name,
			Host:      host,
			Auth:      "none",
			Status:    "unknown",
			CreatedAt: now,
		}
	}

	overlay(&existing.BaseURL, rec.BaseURL)
	overlay(&existing.Description, rec.Description)
	overlay(&existing.Category, rec.Category)
	overlay(&existing.DocsURL, rec.DocsURL)
	overlay(&existing.OpenAPIURL, rec.OpenAPIURL)
	overlay(&existing.Auth, rec.Auth)
	overlay(&existing.RateLimit, rec.RateLimit)
	overlay(&existing.Status, rec.Status)
	overlay(&existing.Source, rec.Source)
	existing.UpdatedAt = now

	return existing, nil
}

// overlay replaces *dst with incoming when incoming is non-empty.
func overlay(dst *string, incoming string) {
	if v := strings.TrimSpace(incoming); v != "" {
		*dst = v
	}
}

// recordByIdentity fetches a record by its (name, host) identity.
func recordByIdentity(tx *sql.Tx, name, host string) (APIRecord, error) {
	row := tx.QueryRow(
		"SELECT "+recordColumns+" FROM apis WHERE name = ? AND host = ?",
		name, host,
	)
	return scanRecord(row)
}

// writeRecord inserts or updates the merged record and returns its id.
func writeRecord(tx *sql.Tx, rec APIRecord) (int64, error) {
	if rec.ID == 0 {
		res, err := tx.Exec(`
			INSERT INTO apis (name, host, base_url, description, category,
				docs_url, openapi_url, auth, rate_limit, status, source,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			rec.Name, rec.Host, rec.BaseURL, rec.Description, rec.Category,
			rec.DocsURL, rec.OpenAPIURL, rec.Auth, rec.RateLimit, rec.Status,
			rec.Source, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	_, err := tx.Exec(`
		UPDATE apis SET base_url = ?, description = ?, category = ?,
			docs_url = ?, openapi_url = ?, auth = ?, rate_limit = ?,
			status = ?, source = ?, updated_at = ?
		WHERE id = ?
	`,
		rec.BaseURL, rec.Description, rec.Category, rec.DocsURL,
		rec.OpenAPIURL, rec.Auth, rec.RateLimit, rec.Status, rec.Source,
		rec.UpdatedAt, rec.ID,
	)
	return rec.ID, err
}

// upsertEndpoints writes the payload's endpoints, keyed by
// (api, method, path). Methods are uppercased; a missing method
// defaults to GET and a missing path to "/".
func upsertEndpoints(tx *sql.Tx, apiID int64, endpoints []Endpoint) error {
	if len(endpoints) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO endpoints (api_id, method, path, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(api_id, method, path)
		DO UPDATE SET description = excluded.description
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ep := range endpoints {
		method := strings.ToUpper(strings.TrimSpace(ep.Method))
		if method == "" {
			method = "GET"
		}
		path := strings.TrimSpace(ep.Path)
		if path == "" {
			path = "/"
		}
		if _, err := stmt.Exec(apiID, method, path, ep.Description); err != nil {
			return fmt.Errorf("endpoint %s %s: %w", method, path, err)
		}
	}
	return nil
}

// writeEmbedding regenerates the record's embedding from its stored
// name and description.
func (s *Store) writeEmbedding(tx *sql.Tx, apiID int64, name, description string) error {
	vec := s.embedder.Embed(name + "\n" + description)
	_, err := tx.Exec(`
		INSERT INTO embeddings (api_id, dim, vector)
		VALUES (?, ?, ?)
		ON CONFLICT(api_id)
		DO UPDATE SET dim = excluded.dim, vector = excluded.vector
	`,
		apiID, s.embedder.Dimensions(), vectorToJSON(vec),
	)
	return err
}
