// Package query turns a free-text question plus optional structured filters
// into an ordered, bounded candidate list from the catalog.
package query

import (
	"slices"
	"strings"

	"github.com/xenking/catalog-advisor/internal/catalog"
)

// DefaultLimit bounds the candidate list when the caller does not supply one.
const DefaultLimit = 5

// Query represents one resolution request.
type Query struct {
	Question string
	Filters  catalog.Filters
	Limit    int
}

// Resolver computes candidate lists. It holds no state between calls beyond
// the read-only store reference.
type Resolver struct {
	store *catalog.Store
}

// NewResolver creates a Resolver reading from the given store.
func NewResolver(store *catalog.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve narrows the catalog by the query's filters and question, ranks the
// result, and truncates it to q.Limit. The limit must be positive; callers
// normalize or reject non-positive limits before reaching this point.
//
// The candidate set is the intersection of filter matches and text matches:
// filters first, then the question applied over the filtered subset. An empty
// result is a valid outcome, not an error.
func (r *Resolver) Resolve(q Query) []catalog.Product {
	var candidates []catalog.Product
	if q.Filters.Empty() {
		candidates = r.store.All()
	} else {
		candidates = r.store.Filter(q.Filters)
	}

	if question := strings.TrimSpace(q.Question); question != "" {
		candidates = r.matchQuestion(candidates, question)
	}

	Rank(candidates)

	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}
	return candidates
}

// matchQuestion keeps products whose searchable fields contain the whole
// question as a substring. When nothing matches a multi-word question, it
// falls back to keyword matching: tokens absent from the catalog vocabulary
// are dropped up front, and a product qualifies if it contains any surviving
// token. Single-word questions need no fallback since the substring pass
// already covers them.
func (r *Resolver) matchQuestion(candidates []catalog.Product, question string) []catalog.Product {
	matched := make([]catalog.Product, 0, len(candidates))
	for _, p := range candidates {
		if catalog.MatchesText(p, question) {
			matched = append(matched, p)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	tokens := catalog.Tokenize(question)
	if len(tokens) < 2 {
		return matched
	}
	keep := tokens[:0]
	for _, tok := range tokens {
		if r.store.HasToken(tok) {
			keep = append(keep, tok)
		}
	}
	if len(keep) == 0 {
		return matched
	}

	for _, p := range candidates {
		for _, tok := range keep {
			if catalog.MatchesText(p, tok) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

// Rank sorts products in place by rating descending, then price ascending,
// then ID ascending. The ID key makes the order total, so identical inputs
// always produce identical output.
func Rank(products []catalog.Product) {
	slices.SortFunc(products, func(a, b catalog.Product) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		if c := a.Price.Cmp(b.Price); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
