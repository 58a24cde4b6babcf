// Package api exposes the HTTP surface of the service. Handlers only parse
// and validate the boundary types; resolution logic lives behind the advisor
// facade and the catalog store.
package api

import (
	"net/http"

	"github.com/xenking/catalog-advisor/internal/advisor"
	"github.com/xenking/catalog-advisor/internal/catalog"
)

// Handler holds the dependencies for all API routes.
type Handler struct {
	store   *catalog.Store
	advisor *advisor.Service
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(store *catalog.Store, svc *advisor.Service) *Handler {
	return &Handler{
		store:   store,
		advisor: svc,
	}
}

// Register mounts all API routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/top-rated", h.topRated)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/categories", h.listCategories)
	mux.HandleFunc("GET /api/brands", h.listBrands)
	mux.HandleFunc("POST /api/ask", h.ask)
}
