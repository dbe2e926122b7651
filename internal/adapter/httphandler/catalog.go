package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

// GET v1/products?category=men&subcategory=shirts (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/sections, GET v1/home, GET v1/settings/bank (200 OK)

type CatalogHandler struct {
	catalog port.Catalog
}

func RegisterCatalog(r chi.Router, catalog port.Catalog) {
	h := CatalogHandler{catalog}
	r.Get("/v1/products", h.ListProducts)
	r.Get("/v1/products/{id}", h.GetProduct)
	r.Get("/v1/sections", h.ListSections)
	r.Get("/v1/home", h.Home)
	r.Get("/v1/settings/bank", h.BankDetails)
}

func (h CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListProducts"

	q := r.URL.Query()
	f := domain.ProductFilter{
		Category:    domain.Category(q.Get("category")),
		Subcategory: q.Get("subcategory"),
	}

	ps, err := h.catalog.ListProducts(r.Context(), f)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, productsFromDomain(ps))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"

	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, productFromDomain(p))
}

func (h CatalogHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListSections"

	ss, err := h.catalog.ListActiveSections(r.Context())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sectionsFromDomain(ss))
}

func (h CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Home"

	hs, err := h.catalog.Home(r.Context())
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	out := make([]HomeSection, len(hs))
	for i, s := range hs {
		out[i] = HomeSection{
			Section:  sectionFromDomain(s.Section),
			Products: productsFromDomain(s.Products),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h CatalogHandler) BankDetails(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.BankDetails"

	bd, err := h.catalog.GetBankDetails(r.Context())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bankDetailsFromDomain(bd))
}
