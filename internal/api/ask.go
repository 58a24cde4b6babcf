package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/catalog-advisor/internal/advisor"
	"github.com/xenking/catalog-advisor/internal/catalog"
	"github.com/xenking/catalog-advisor/internal/query"
)

// maxAskBody bounds the request body size for the ask endpoint.
const maxAskBody = 64 << 10

// ask answers a natural-language question about the catalog.
func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAskBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}

	q, err := decodeAskRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.advisor.Resolve(r.Context(), q)
	if err != nil {
		if errors.Is(err, advisor.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeResult(e, res)
	})
}

// decodeAskRequest parses {question, filters?, limit?} into a query. Unknown
// keys are skipped; malformed values fail the whole request.
func decodeAskRequest(body []byte) (query.Query, error) {
	var q query.Query

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "question":
			v, err := d.Str()
			q.Question = v
			return err
		case "limit":
			v, err := d.Int()
			q.Limit = v
			return err
		case "filters":
			if d.Next() == jx.Null {
				return d.Null()
			}
			f, err := decodeFilters(d)
			q.Filters = f
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return q, errors.Wrap(err, "invalid request body")
	}
	return q, nil
}

func decodeFilters(d *jx.Decoder) (catalog.Filters, error) {
	var f catalog.Filters
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "category":
			v, err := d.Str()
			f.Category = v
			return err
		case "brand":
			v, err := d.Str()
			f.Brand = v
			return err
		case "min_price":
			v, err := decodeDecimal(d)
			f.MinPrice = v
			return err
		case "max_price":
			v, err := decodeDecimal(d)
			f.MaxPrice = v
			return err
		case "min_rating":
			v, err := d.Float64()
			if err != nil {
				return err
			}
			if v < 0 || v > 5 {
				return errors.Errorf("min_rating %v outside [0, 5]", v)
			}
			f.MinRating = &v
			return nil
		default:
			return d.Skip()
		}
	})
	return f, err
}

func decodeDecimal(d *jx.Decoder) (*decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return nil, err
	}
	v, err := decimal.NewFromString(strings.Trim(string(n), `"`))
	if err != nil {
		return nil, err
	}
	return &v, nil
}
