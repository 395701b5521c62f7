// Package titles resolves localized display titles for matched categories
// from an external document store, degrading to absent on any failure.
package titles

import (
	"context"
	"errors"
)

// Failure causes for title lookup. All of them map to "absent" at the request
// boundary; they stay distinguishable for diagnostics and tests.
var (
	// ErrNotConfigured means no store URI was provided; no I/O is attempted.
	ErrNotConfigured = errors.New("title store not configured")
	// ErrUnavailable means connecting to or querying the store failed.
	ErrUnavailable = errors.New("title store unavailable")
	// ErrNotFound means the store has no record for the category.
	ErrNotFound = errors.New("category record not found")
	// ErrMalformed means the record exists but is not a recognized shape.
	ErrMalformed = errors.New("category record malformed")
)

// LocaleTitle is one (locale, title) pair on a category record. Pairs with a
// missing locale or title are skipped during resolution, not fatal.
type LocaleTitle struct {
	Locale string `bson:"locale" json:"locale"`
	Title  string `bson:"title" json:"title"`
}

// CategoryDoc is a category record as stored, keyed by category name.
type CategoryDoc struct {
	Category     string        `bson:"category"`
	LocaleTitles []LocaleTitle `bson:"locale_title"`
}

// Store looks up category records by name. Implementations are read-only and
// safe for concurrent use.
type Store interface {
	FindCategory(ctx context.Context, category string) (*CategoryDoc, error)
	Close(ctx context.Context) error
}
