package match

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/activlink/devicematch/internal/catalog"
	"github.com/activlink/devicematch/internal/embedding"
)

// ErrNoCategories is returned when matching against an empty catalog. This is
// a configuration error and is surfaced to the caller, never defaulted.
var ErrNoCategories = errors.New("no categories configured")

// Result is the outcome of a match: the winning category and its cosine
// similarity against the query embedding. Scores are comparable within one
// request only; higher is closer.
type Result struct {
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

// Matcher scores a query against every catalog embedding and returns the best.
// It is stateless per request; the catalog is shared read-only data.
type Matcher struct {
	embedder embedding.Embedder
	catalog  *catalog.Catalog
}

// NewMatcher creates a matcher over the given embedder and catalog.
func NewMatcher(embedder embedding.Embedder, cat *catalog.Catalog) *Matcher {
	return &Matcher{embedder: embedder, catalog: cat}
}

// Match embeds the query text and returns the catalog entry with the highest
// cosine similarity. Query text is passed to the embedder as-is, without
// validation. Ties break on catalog order: the first maximal entry wins.
func (m *Matcher) Match(ctx context.Context, query string) (*Result, error) {
	if m.catalog.Len() == 0 {
		return nil, ErrNoCategories
	}
	queryVec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVec) != m.catalog.Dimensions() {
		return nil, fmt.Errorf("query embedding dimension mismatch: got %d, catalog has %d", len(queryVec), m.catalog.Dimensions())
	}
	return m.bestAgainst(queryVec), nil
}

// bestAgainst scans the catalog and returns the first entry with maximal
// cosine similarity to queryVec.
func (m *Matcher) bestAgainst(queryVec []float32) *Result {
	bestIdx := 0
	bestScore := math.Inf(-1)
	for i := 0; i < m.catalog.Len(); i++ {
		_, vec := m.catalog.At(i)
		score := Cosine(queryVec, vec)
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	name, _ := m.catalog.At(bestIdx)
	return &Result{Category: name, Similarity: bestScore}
}
