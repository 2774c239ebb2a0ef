/*
Package keystore persists API keys per service name, with usage counters.

This is a local convenience store, not a production secret manager: keys
live in a bbolt file under the user's data directory. The keystore is
entirely separate state from the API catalog and never interacts with it.
Writes are transactional, so a crash mid-write cannot corrupt previously
committed entries.
*/
package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketKeys = []byte("keys")

// Record is one stored key with its metadata.
type Record struct {
	Service    string `json:"service"`
	APIKey     string `json:"api_key,omitempty"`
	Created    string `json:"created"`
	LastUsed   string `json:"last_used,omitempty"`
	UsageCount int    `json:"usage_count"`
	Active     bool   `json:"active"`
}

// Health is the result of a key health check.
type Health struct {
	Status     string `json:"status"`
	LastUsed   string `json:"last_used,omitempty"`
	UsageCount int    `json:"usage_count"`
	Message    string `json:"message,omitempty"`
}

// Store is the bbolt-backed key store.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the keystore at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create keystore directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("keystore open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKeys)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore init: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Store saves or updates the key for service. The creation timestamp
// and usage counter of an existing entry are preserved.
func (s *Store) Store(service, apiKey string) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKeys)

		rec := Record{
			Service: service,
			Created: now,
			Active:  true,
		}
		if existing := b.Get([]byte(service)); existing != nil {
			if err := json.Unmarshal(existing, &rec); err != nil {
				return fmt.Errorf("decode key record: %w", err)
			}
		}
		rec.APIKey = apiKey
		rec.Active = true

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode key record: %w", err)
		}
		return b.Put([]byte(service), data)
	})
}

// List returns metadata for every stored key, sorted by service name.
// The secret itself is stripped so callers cannot accidentally display it.
func (s *Store) List() ([]Record, error) {
	var records []Record

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketKeys).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode key record %s: %w", k, err)
			}
			rec.APIKey = ""
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Service < records[j].Service
	})
	return records, nil
}

// CheckHealth reports the state of a stored key and records the check
// as a usage: last_used and usage_count are updated.
func (s *Store) CheckHealth(service string) (Health, error) {
	var health Health

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKeys)

		data := b.Get([]byte(service))
		if data == nil {
			health = Health{Status: "not_found", Message: "key not found"}
			return nil
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decode key record: %w", err)
		}

		rec.LastUsed = time.Now().UTC().Format(time.RFC3339)
		rec.UsageCount++

		updated, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode key record: %w", err)
		}
		if err := b.Put([]byte(service), updated); err != nil {
			return err
		}

		status := "healthy"
		if !rec.Active {
			status = "inactive"
		}
		health = Health{
			Status:     status,
			LastUsed:   rec.LastUsed,
			UsageCount: rec.UsageCount,
		}
		return nil
	})
	return health, err
}

// Delete removes the key for service, if present.
func (s *Store) Delete(service string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketKeys).Delete([]byte(service))
	})
}

// Dashboard returns a short human-readable usage summary.
func (s *Store) Dashboard() (string, error) {
	records, err := s.List()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "No API keys stored", nil
	}

	lines := []string{"Stored API keys:"}
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("- %s: used %d times", rec.Service, rec.UsageCount))
	}
	return strings.Join(lines, "\n"), nil
}
