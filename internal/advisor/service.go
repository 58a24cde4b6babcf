package advisor

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/catalog-advisor/internal/catalog"
	"github.com/xenking/catalog-advisor/internal/query"
)

// ErrInvalidLimit is returned for a negative limit. It is the only input
// error this layer emits; everything else resolves to a successful Result.
var ErrInvalidLimit = errors.New("limit must be positive")

// Result is the facade's output. Answer is never empty, Products is always a
// subset of the catalog no longer than the query limit, and Note carries a
// diagnostic on the fallback path.
type Result struct {
	Answer   string
	Products []catalog.Product
	Source   Source
	Note     string
}

// Service is the single entry point for query resolution: it runs the
// resolver, then the composer, and assembles the Result.
type Service struct {
	resolver *query.Resolver
	composer *Composer
}

// NewService creates the facade from its two collaborators.
func NewService(resolver *query.Resolver, composer *Composer) *Service {
	return &Service{resolver: resolver, composer: composer}
}

// Resolve answers one query. A zero limit is normalized to the default; a
// negative limit returns ErrInvalidLimit. No-match and provider-failure
// outcomes are normal results, never errors.
func (s *Service) Resolve(ctx context.Context, q query.Query) (*Result, error) {
	if q.Limit < 0 {
		return nil, ErrInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = query.DefaultLimit
	}

	products := s.resolver.Resolve(q)
	answer, source, note := s.composer.Compose(ctx, q.Question, products)

	return &Result{
		Answer:   answer,
		Products: products,
		Source:   source,
		Note:     note,
	}, nil
}
