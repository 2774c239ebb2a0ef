/*
Package embed implements a deterministic hashing embedding for short text.

This is not a trained model. Each token is hashed into a fixed-size bucket
vector ("hashing trick") and the result is L2-normalized, so cosine
similarity between two embeddings reduces to a plain dot product. The
tokenization rule and hash function are fixed so that identical text
produces a bit-identical vector on every run and platform:

  - text is lowercased and split into runs of ASCII [a-z0-9]
  - each token is hashed with FNV-1a (32-bit) and bucketed by h % dim
*/
package embed

import (
	"hash/fnv"
	"math"
)

// DefaultDim is the embedding dimension used when none is configured.
const DefaultDim = 256

// Embedder converts text into fixed-dimension normalized vectors.
type Embedder struct {
	dim int
}

// New creates an embedder with the given dimension.
// Non-positive dimensions fall back to DefaultDim.
func New(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Embedder{dim: dim}
}

// Dimensions returns the dimensionality of vectors produced by this embedder.
func (e *Embedder) Dimensions() int {
	return e.dim
}

// Embed returns the L2-normalized bucket-count vector for text.
// Text without any alphanumeric token yields the all-zero vector.
func (e *Embedder) Embed(text string) []float64 {
	vec := make([]float64, e.dim)

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dim]++
	}

	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Tokenize splits text into lowercase runs of ASCII letters and digits.
func Tokenize(text string) []string {
	var tokens []string
	var cur []byte

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			cur = append(cur, c+('a'-'A'))
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			cur = append(cur, c)
		default:
			if len(cur) > 0 {
				tokens = append(tokens, string(cur))
				cur = nil
			}
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	return tokens
}

// Dot computes the dot product of two vectors. For vectors produced by
// Embed this equals their cosine similarity, since both are normalized.
// Mismatched lengths are compared over the shorter prefix.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
