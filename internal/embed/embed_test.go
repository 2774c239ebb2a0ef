package embed

import (
	"math"
	"testing"
)

func TestEmbedUnitNorm(t *testing.T) {
	e := New(DefaultDim)

	vec := e.Embed("Space imagery and data")

	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-9 {
		t.Errorf("expected unit norm, got %f", math.Sqrt(sum))
	}
}

func TestEmbedEmptyText(t *testing.T) {
	e := New(DefaultDim)

	for _, text := range []string{"", "   ", "!!! ---", "\n\t"} {
		vec := e.Embed(text)
		if len(vec) != DefaultDim {
			t.Fatalf("expected %d dimensions, got %d", DefaultDim, len(vec))
		}
		for i, v := range vec {
			if v != 0 {
				t.Errorf("text %q: expected zero vector, bucket %d is %f", text, i, v)
				break
			}
		}
	}
}

func TestEmbedDeterminism(t *testing.T) {
	e := New(DefaultDim)

	a := e.Embed("weather forecast api")
	b := e.Embed("weather forecast api")

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at bucket %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEmbedCaseInsensitive(t *testing.T) {
	e := New(DefaultDim)

	a := e.Embed("NASA Open APIs")
	b := e.Embed("nasa open apis")

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("case should not change the embedding (bucket %d)", i)
		}
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Space imagery", []string{"space", "imagery"}},
		{"api.nasa.gov", []string{"api", "nasa", "gov"}},
		{"GET /v2/items?id=3", []string{"get", "v2", "items", "id", "3"}},
		{"", nil},
		{"---", nil},
	}

	for _, tc := range cases {
		got := Tokenize(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestDotSimilarity(t *testing.T) {
	e := New(DefaultDim)

	query := e.Embed("space")
	overlapping := e.Embed("Space imagery and data")
	unrelated := e.Embed("banking payments ledger")

	if Dot(query, overlapping) < 0.2 {
		t.Errorf("overlapping text scored %f, expected >= 0.2", Dot(query, overlapping))
	}
	if Dot(query, unrelated) >= 0.2 {
		t.Errorf("unrelated text scored %f, expected < 0.2", Dot(query, unrelated))
	}
	if Dot(query, query) < 0.999 {
		t.Errorf("self similarity should be ~1, got %f", Dot(query, query))
	}
}
