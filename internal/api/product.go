package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/catalog-advisor/internal/catalog"
	"github.com/xenking/catalog-advisor/internal/query"
)

// listProducts serves the catalog with optional filter, search, and limit
// query parameters. Results keep the catalog's source order.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	filters, err := parseFilters(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimit(params.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products := h.store.Filter(filters)
	if q := params.Get("q"); q != "" {
		matched := products[:0]
		for _, p := range products {
			if catalog.MatchesText(p, q) {
				matched = append(matched, p)
			}
		}
		products = matched
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProducts(e, products)
	})
}

// getProduct serves a single product by id.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProduct(e, *p)
	})
}

// topRated serves the head of the full catalog ranked by rating desc,
// price asc.
func (h *Handler) topRated(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit == 0 {
		limit = query.DefaultLimit
	}

	products := h.store.All()
	query.Rank(products)
	if len(products) > limit {
		products = products[:limit]
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProducts(e, products)
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeStrings(e, h.store.Categories())
	})
}

func (h *Handler) listBrands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeStrings(e, h.store.Brands())
	})
}

// parseFilters reads the structured filter query parameters. Unknown
// parameters are ignored; malformed values are rejected.
func parseFilters(params url.Values) (catalog.Filters, error) {
	var f catalog.Filters
	f.Category = params.Get("category")
	f.Brand = params.Get("brand")

	if v := params.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.Errorf("invalid min_price %q", v)
		}
		f.MinPrice = &d
	}
	if v := params.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.Errorf("invalid max_price %q", v)
		}
		f.MaxPrice = &d
	}
	if v := params.Get("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 || r > 5 {
			return f, errors.Errorf("invalid min_rating %q", v)
		}
		f.MinRating = &r
	}
	return f, nil
}

// parseLimit parses an optional limit parameter. Empty means "no explicit
// limit" (0); negative or non-numeric values are rejected.
func parseLimit(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid limit %q", v)
	}
	return n, nil
}
