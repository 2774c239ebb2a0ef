/*
Package search implements query answering over the API catalog.

A query produces two independently ranked buckets: full-text matches
from a bleve index over name/description/category, and semantic matches
scored by cosine similarity between hashing embeddings. The buckets are
deliberately not deduplicated; a record may appear in both.
*/
package search

import "github.com/apiscout/apiscout/internal/catalog"

// Match is one search hit in boundary-displayable form.
type Match struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Host        string  `json:"host"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	DocsURL     string  `json:"docs_url,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// Results holds the two labeled result buckets for one query.
type Results struct {
	Text     []Match `json:"text"`
	Semantic []Match `json:"semantic"`
}

// Empty reports whether neither bucket matched anything.
func (r Results) Empty() bool {
	return len(r.Text) == 0 && len(r.Semantic) == 0
}

func matchFromRecord(rec catalog.APIRecord, score float64) Match {
	return Match{
		ID:          rec.ID,
		Name:        rec.Name,
		Host:        rec.Host,
		Category:    rec.Category,
		Description: rec.Description,
		DocsURL:     rec.DocsURL,
		BaseURL:     rec.BaseURL,
		Score:       score,
	}
}
