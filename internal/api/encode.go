package api

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/catalog-advisor/internal/advisor"
	"github.com/xenking/catalog-advisor/internal/catalog"
)

// writeJSON encodes a value with the given function and writes it with the
// given status code.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := &jx.Encoder{}
	encode(e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes a {code, message} error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("code")
		e.Int(status)
		e.FieldStart("message")
		e.Str(message)
		e.ObjEnd()
	})
}

func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(p.ID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("category")
	e.Str(p.Category)
	e.FieldStart("brand")
	e.Str(p.Brand)
	e.FieldStart("price")
	e.Num(jx.Num(p.Price.String()))
	e.FieldStart("rating")
	e.Float64(p.Rating)
	e.FieldStart("description")
	e.Str(p.Description)
	e.FieldStart("in_stock")
	e.Bool(p.InStock)
	if p.ImageURL != "" {
		e.FieldStart("image_url")
		e.Str(p.ImageURL)
	}
	e.ObjEnd()
}

func encodeProducts(e *jx.Encoder, products []catalog.Product) {
	e.ArrStart()
	for _, p := range products {
		encodeProduct(e, p)
	}
	e.ArrEnd()
}

func encodeStrings(e *jx.Encoder, values []string) {
	e.ArrStart()
	for _, v := range values {
		e.Str(v)
	}
	e.ArrEnd()
}

func encodeResult(e *jx.Encoder, res *advisor.Result) {
	e.ObjStart()
	e.FieldStart("answer")
	e.Str(res.Answer)
	e.FieldStart("source")
	e.Str(string(res.Source))
	if res.Note != "" {
		e.FieldStart("note")
		e.Str(res.Note)
	}
	e.FieldStart("products")
	encodeProducts(e, res.Products)
	e.ObjEnd()
}
