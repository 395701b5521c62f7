package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/activlink/devicematch/internal/catalog"
	"github.com/activlink/devicematch/internal/embedding"
)

// fixedEmbedder returns the same vector for every text, or a fixed error.
type fixedEmbedder struct {
	vec []float32
	err error
}

func (e *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

func (e *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vec
	}
	return out, e.err
}

func (e *fixedEmbedder) Dimensions() int { return len(e.vec) }
func (e *fixedEmbedder) Close() error    { return nil }

func testCatalog(t *testing.T, embedder embedding.Embedder, names ...string) *catalog.Catalog {
	t.Helper()
	vectors, err := embedder.EmbedBatch(context.Background(), names)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.New(names, vectors)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestMatchReturnsBestCatalogEntry(t *testing.T) {
	embedder := embedding.NewMockEmbedder(16)
	names := []string{"Laptop", "Smartphone", "Washing Machine", "Television"}
	cat := testCatalog(t, embedder, names...)
	m := NewMatcher(embedder, cat)

	result, err := m.Match(context.Background(), "portable computer")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	inCatalog := false
	for _, n := range names {
		if n == result.Category {
			inCatalog = true
		}
	}
	if !inCatalog {
		t.Fatalf("Match() returned %q, not a catalog entry", result.Category)
	}

	// The winner's score dominates every other entry's score.
	queryVec, err := embedder.Embed(context.Background(), "portable computer")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < cat.Len(); i++ {
		name, vec := cat.At(i)
		if score := Cosine(queryVec, vec); score > result.Similarity {
			t.Errorf("entry %q scores %v, above returned similarity %v", name, score, result.Similarity)
		}
	}
}

func TestMatchDeterministic(t *testing.T) {
	embedder := embedding.NewMockEmbedder(16)
	cat := testCatalog(t, embedder, "Laptop", "Smartphone", "Tablet")
	m := NewMatcher(embedder, cat)

	first, err := m.Match(context.Background(), "cracked phone screen")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Match(context.Background(), "cracked phone screen")
	if err != nil {
		t.Fatal(err)
	}
	if first.Category != second.Category || first.Similarity != second.Similarity {
		t.Errorf("repeated match differs: %+v vs %+v", first, second)
	}
}

func TestMatchTieBreaksOnCatalogOrder(t *testing.T) {
	// Two identical catalog vectors: the first maximal entry wins.
	vec := []float32{0.6, 0.8}
	cat, err := catalog.New([]string{"First", "Second"}, [][]float32{vec, vec})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(&fixedEmbedder{vec: vec}, cat)

	result, err := m.Match(context.Background(), "anything")
	if err != nil {
		t.Fatal(err)
	}
	if result.Category != "First" {
		t.Errorf("tie-break: got %q, want First", result.Category)
	}
}

func TestMatchEmptyCatalog(t *testing.T) {
	cat, err := catalog.New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(embedding.NewMockEmbedder(8), cat)

	_, err = m.Match(context.Background(), "anything")
	if !errors.Is(err, ErrNoCategories) {
		t.Errorf("Match() error = %v, want ErrNoCategories", err)
	}
}

func TestMatchEmbedderFailure(t *testing.T) {
	cat, err := catalog.New([]string{"Laptop"}, [][]float32{{1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(&fixedEmbedder{err: fmt.Errorf("provider down")}, cat)

	if _, err := m.Match(context.Background(), "anything"); err == nil {
		t.Error("Match() should surface embedder failure")
	}
}

func TestMatchDimensionMismatch(t *testing.T) {
	cat, err := catalog.New([]string{"Laptop"}, [][]float32{{1, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(&fixedEmbedder{vec: []float32{1, 0}}, cat)

	if _, err := m.Match(context.Background(), "anything"); err == nil {
		t.Error("Match() should fail on dimension mismatch")
	}
}
