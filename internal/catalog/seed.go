package catalog

// DefaultSeeds returns the built-in starter records. Seeding is
// idempotent because Ingest merges on (name, host).
func DefaultSeeds() []IngestRecord {
	return []IngestRecord{
		{
			Name:        "NASA Open APIs",
			Host:        "api.nasa.gov",
			BaseURL:     "https://api.nasa.gov",
			Description: "Space imagery and data (e.g., APOD, EPIC).",
			Category:    "space",
			DocsURL:     "https://api.nasa.gov/",
			Auth:        "apiKey",
			Source:      "seed",
		},
		{
			Name:        "US Census APIs",
			Host:        "api.census.gov",
			BaseURL:     "https://api.census.gov",
			Description: "Population and economic datasets.",
			Category:    "government",
			DocsURL:     "https://www.census.gov/data/developers/data-sets.html",
			Auth:        "none",
			Source:      "seed",
		},
		{
			Name:        "Library of Congress",
			Host:        "loc.gov",
			BaseURL:     "https://www.loc.gov",
			Description: "Digital collections search endpoints.",
			Category:    "culture",
			DocsURL:     "https://libraryofcongress.github.io/data-exploration/",
			Auth:        "none",
			Source:      "seed",
		},
		{
			Name:        "GovInfo",
			Host:        "api.govinfo.gov",
			BaseURL:     "https://api.govinfo.gov",
			Description: "Government Publishing Office document APIs.",
			Category:    "government",
			DocsURL:     "https://api.govinfo.gov/docs/",
			Auth:        "apiKey",
			Source:      "seed",
		},
	}
}

// SeedDefaults ingests the built-in records and returns how many were
// written.
func (s *Store) SeedDefaults() (int, error) {
	seeded := 0
	for _, rec := range DefaultSeeds() {
		if _, err := s.Ingest(rec); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
