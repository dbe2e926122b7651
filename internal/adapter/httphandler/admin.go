package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

type AdminHandler struct {
	admin   port.AdminConsole
	catalog port.CatalogAdmin
	orders  port.OrderManager
}

// RegisterAdmin mounts the back-office routes. Everything except login
// requires a bearer token.
func RegisterAdmin(
	r chi.Router,
	admin port.AdminConsole,
	catalog port.CatalogAdmin,
	orders port.OrderManager,
) {
	h := AdminHandler{admin: admin, catalog: catalog, orders: orders}

	r.Route("/v1/admin", func(r chi.Router) {
		r.With(AllowJSON).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuth(admin))

			r.Post("/logout", h.Logout)
			r.Get("/stats", h.Stats)
			r.Post("/uploads/image", h.UploadImage)

			r.Group(func(r chi.Router) {
				r.Use(AllowJSON)

				r.Post("/products", h.CreateProduct)
				r.Put("/products/{id}", h.UpdateProduct)
				r.Delete("/products/{id}", h.DeleteProduct)

				r.Get("/sections", h.ListSections)
				r.Get("/sections/{id}", h.GetSection)
				r.Post("/sections", h.CreateSection)
				r.Put("/sections/{id}", h.UpdateSection)
				r.Delete("/sections/{id}", h.DeleteSection)

				r.Get("/orders", h.ListOrders)
				r.Get("/orders/{id}", h.GetOrder)
				r.Put("/orders/{id}/status", h.UpdateOrderStatus)
				r.Put("/orders/{id}/payment-status", h.UpdatePaymentStatus)

				r.Get("/settings/bank", h.BankDetails)
				r.Put("/settings/bank", h.UpdateBankDetails)
			})
		})
	})
}

////// SESSION //////

func (h AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Login"

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	token, err := h.admin.Login(r.Context(), domain.Credentials(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Logout"

	if err := h.admin.Logout(r.Context(), adminToken(r)); err != nil {
		writeError(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Stats"

	s, err := h.admin.Stats(r.Context())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, Stats(s))
}

func (h AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UploadImage"

	img, err := readImage(w, r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	url, err := h.admin.UploadImage(r.Context(), img)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

////// PRODUCTS //////

func (h AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.CreateProduct"

	var req ProductInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), req.toDomain(""))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, productFromDomain(p))
}

func (h AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UpdateProduct"

	var req ProductInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	p, err := h.catalog.UpdateProduct(
		r.Context(), req.toDomain(chi.URLParam(r, "id")),
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, productFromDomain(p))
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"

	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

////// SECTIONS //////

func (h AdminHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.ListSections"

	ss, err := h.catalog.ListSections(r.Context())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sectionsFromDomain(ss))
}

func (h AdminHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetSection"

	s, err := h.catalog.GetSection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sectionFromDomain(s))
}

func (h AdminHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.CreateSection"

	var req SectionInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	s, err := h.catalog.CreateSection(r.Context(), req.toDomain(""))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, sectionFromDomain(s))
}

func (h AdminHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UpdateSection"

	var req SectionInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	s, err := h.catalog.UpdateSection(
		r.Context(), req.toDomain(chi.URLParam(r, "id")),
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sectionFromDomain(s))
}

func (h AdminHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteSection"

	if err := h.catalog.DeleteSection(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

////// ORDERS //////

func (h AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.ListOrders"

	f := domain.OrderFilter{
		Status: domain.OrderStatus(r.URL.Query().Get("status")),
	}
	list, err := h.orders.ListOrders(r.Context(), f)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	out := make([]Order, len(list))
	for i, o := range list {
		out[i] = orderFromDomain(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetOrder"

	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, orderFromDomain(o))
}

func (h AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UpdateOrderStatus"

	var req StatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	o, err := h.orders.UpdateOrderStatus(
		r.Context(), chi.URLParam(r, "id"), domain.OrderStatus(req.Status),
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, orderFromDomain(o))
}

func (h AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UpdatePaymentStatus"

	var req StatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	o, err := h.orders.UpdatePaymentStatus(
		r.Context(), chi.URLParam(r, "id"), domain.PaymentStatus(req.Status),
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, orderFromDomain(o))
}

////// SETTINGS //////

func (h AdminHandler) BankDetails(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.BankDetails"

	bd, err := h.catalog.GetBankDetails(r.Context())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bankDetailsFromDomain(bd))
}

func (h AdminHandler) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UpdateBankDetails"

	var req BankDetailsInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	bd, err := h.catalog.UpdateBankDetails(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bankDetailsFromDomain(bd))
}
