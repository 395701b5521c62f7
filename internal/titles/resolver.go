package titles

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// FallbackLocale is tried when the preferred locale has no title.
const FallbackLocale = "en_GB"

// Outcome classifies why a resolution did or did not produce a title.
type Outcome string

const (
	OutcomeFound         Outcome = "found"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeUnavailable   Outcome = "unavailable"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeMalformed     Outcome = "malformed"
	// OutcomeEmpty means a record exists but holds no usable (locale, title) pair.
	OutcomeEmpty Outcome = "empty"
)

// Resolution is the result of a title lookup. Found is false for every
// non-found outcome; the request carrying it still succeeds.
type Resolution struct {
	Title   string
	Found   bool
	Outcome Outcome
}

// Resolver picks a localized title for a category with an ordered fallback:
// preferred locale, then en_GB, then the first well-formed pair in the
// record's stored order. It never returns an error; every failure reaching or
// reading the store becomes an absent title.
type Resolver struct {
	store  Store
	logger *zap.Logger
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the best title for category given the optional preferred
// locale. Pairs missing a locale or title are skipped.
func (r *Resolver) Resolve(ctx context.Context, category, preferred string) Resolution {
	doc, err := r.store.FindCategory(ctx, category)
	if err != nil {
		outcome := outcomeForError(err)
		if outcome == OutcomeUnavailable || outcome == OutcomeMalformed {
			r.logger.Debug("title lookup degraded",
				zap.String("category", category),
				zap.String("outcome", string(outcome)),
				zap.Error(err))
		}
		return Resolution{Outcome: outcome}
	}

	byLocale := make(map[string]string, len(doc.LocaleTitles))
	order := make([]string, 0, len(doc.LocaleTitles))
	for _, lt := range doc.LocaleTitles {
		if lt.Locale == "" || lt.Title == "" {
			continue
		}
		if _, ok := byLocale[lt.Locale]; !ok {
			order = append(order, lt.Locale)
		}
		byLocale[lt.Locale] = lt.Title
	}

	if preferred != "" {
		if title, ok := byLocale[preferred]; ok {
			return Resolution{Title: title, Found: true, Outcome: OutcomeFound}
		}
	}
	if title, ok := byLocale[FallbackLocale]; ok {
		return Resolution{Title: title, Found: true, Outcome: OutcomeFound}
	}
	if len(order) > 0 {
		// Last resort: first well-formed pair in the record's stored order,
		// which keeps the pick deterministic within a call.
		return Resolution{Title: byLocale[order[0]], Found: true, Outcome: OutcomeFound}
	}
	return Resolution{Outcome: OutcomeEmpty}
}

func outcomeForError(err error) Outcome {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return OutcomeNotConfigured
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrMalformed):
		return OutcomeMalformed
	default:
		return OutcomeUnavailable
	}
}
