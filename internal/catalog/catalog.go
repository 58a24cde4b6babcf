// Package catalog owns the immutable in-memory product collection and its
// read primitives. A Store is built once at startup and is safe for
// unlimited concurrent readers.
package catalog

import (
	"strings"
	"unicode"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents one catalog item.
type Product struct {
	ID          string
	Name        string
	Category    string
	Brand       string
	Price       decimal.Decimal
	Rating      float64
	Description string
	InStock     bool
	ImageURL    string
}

// Filters narrows a product set. Zero-valued fields are no-ops; supplied
// constraints combine with logical AND. Category and brand are compared
// case-insensitively.
type Filters struct {
	Category  string
	Brand     string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *float64
}

// Empty reports whether no constraint is set.
func (f Filters) Empty() bool {
	return f.Category == "" && f.Brand == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && f.MinRating == nil
}

// Matches reports whether p satisfies every supplied constraint.
func (f Filters) Matches(p Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(f.Brand, p.Brand) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	return true
}

// Store holds the product collection. Immutable after construction, so
// concurrent reads require no locking.
type Store struct {
	products   []Product
	byID       map[string]int
	categories []string
	brands     []string

	// vocab holds every lowercased token from the searchable fields. The
	// resolver's keyword fallback uses it to skip tokens that cannot match.
	vocab *bloom.BloomFilter
}

// New builds a Store from the given products. It fails on the first
// validation error: duplicate or empty ID, empty name, negative price, or a
// rating outside [0, 5].
func New(products []Product) (*Store, error) {
	s := &Store{
		products: products,
		byID:     make(map[string]int, len(products)),
	}

	seenCategory := make(map[string]struct{})
	seenBrand := make(map[string]struct{})
	tokens := make(map[string]struct{})

	for i, p := range products {
		switch {
		case p.ID == "":
			return nil, errors.Errorf("product at index %d: empty id", i)
		case p.Name == "":
			return nil, errors.Errorf("product %q: empty name", p.ID)
		case p.Price.IsNegative():
			return nil, errors.Errorf("product %q: negative price %s", p.ID, p.Price)
		case p.Rating < 0 || p.Rating > 5:
			return nil, errors.Errorf("product %q: rating %.2f outside [0, 5]", p.ID, p.Rating)
		}
		if _, ok := s.byID[p.ID]; ok {
			return nil, errors.Errorf("duplicate product id %q", p.ID)
		}
		s.byID[p.ID] = i

		if key := strings.ToLower(p.Category); p.Category != "" {
			if _, ok := seenCategory[key]; !ok {
				seenCategory[key] = struct{}{}
				s.categories = append(s.categories, p.Category)
			}
		}
		if key := strings.ToLower(p.Brand); p.Brand != "" {
			if _, ok := seenBrand[key]; !ok {
				seenBrand[key] = struct{}{}
				s.brands = append(s.brands, p.Brand)
			}
		}

		for _, field := range []string{p.Name, p.Category, p.Brand, p.Description} {
			for _, tok := range Tokenize(field) {
				tokens[tok] = struct{}{}
			}
		}
	}

	n := uint(len(tokens))
	if n == 0 {
		n = 1
	}
	s.vocab = bloom.NewWithEstimates(n, 0.001)
	for tok := range tokens {
		s.vocab.AddString(tok)
	}

	return s, nil
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int { return len(s.products) }

// All returns the full product sequence in source order. The returned slice
// is a copy; callers may reorder or truncate it freely.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// GetByID returns the product with the given id, or ErrNotFound.
func (s *Store) GetByID(id string) (*Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := s.products[i]
	return &p, nil
}

// Filter returns the ordered subsequence satisfying all supplied constraints.
func (s *Store) Filter(f Filters) []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the ordered subsequence whose name, category, brand, or
// description contains text as a case-insensitive substring. Empty or
// whitespace-only text returns the full collection.
func (s *Store) Search(text string) []Product {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.All()
	}
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if MatchesText(p, text) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category names in first-seen order.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Brands returns the distinct brand names in first-seen order.
func (s *Store) Brands() []string {
	return append([]string(nil), s.brands...)
}

// HasToken reports whether the lowercased token may appear somewhere in the
// catalog's searchable fields. False positives are possible (bloom filter),
// false negatives are not.
func (s *Store) HasToken(token string) bool {
	return s.vocab.TestString(strings.ToLower(token))
}

// MatchesText reports whether any searchable field of p contains text as a
// case-insensitive substring.
func MatchesText(p Product, text string) bool {
	needle := strings.ToLower(text)
	for _, field := range []string{p.Name, p.Category, p.Brand, p.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Tokenize splits text into lowercased alphanumeric tokens, dropping tokens
// shorter than two characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}
