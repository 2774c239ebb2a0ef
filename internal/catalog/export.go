package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ExportAll snapshots the whole catalog: every record with its endpoint
// list attached, in name order.
func (s *Store) ExportAll() (Snapshot, error) {
	recs, err := s.ListAPIs()
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{APIs: make([]ExportRecord, 0, len(recs))}
	for _, rec := range recs {
		endpoints, err := s.GetEndpoints(rec.ID)
		if err != nil {
			return Snapshot{}, err
		}
		snap.APIs = append(snap.APIs, ExportRecord{
			APIRecord: rec,
			Endpoints: endpoints,
		})
	}
	return snap, nil
}

// WriteExport serializes the catalog snapshot as JSON to path and
// returns the resolved absolute path written. The write is atomic:
// a temp file in the target directory renamed into place.
func (s *Store) WriteExport(path string) (string, error) {
	snap, err := s.ExportAll()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", storageErr("export", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", storageErr("export", err)
	}

	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", storageErr("export", err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		os.Remove(tmp)
		return "", storageErr("export", err)
	}

	return abs, nil
}

// ImportSnapshot re-ingests every record of a snapshot. Used by the
// update command to merge an exported apis.json back into the catalog.
func (s *Store) ImportSnapshot(snap Snapshot) (int, error) {
	merged := 0
	for _, rec := range snap.APIs {
		_, err := s.Ingest(IngestRecord{
			Name:        rec.Name,
			Host:        rec.Host,
			BaseURL:     rec.BaseURL,
			Description: rec.Description,
			Category:    rec.Category,
			DocsURL:     rec.DocsURL,
			OpenAPIURL:  rec.OpenAPIURL,
			Auth:        rec.Auth,
			RateLimit:   rec.RateLimit,
			Status:      rec.Status,
			Source:      rec.Source,
			Endpoints:   rec.Endpoints,
		})
		if err != nil {
			return merged, err
		}
		merged++
	}
	return merged, nil
}
