package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/fashion-store/internal/core/port"
)

// GET v1/orders/{id}/tracking (200 OK, 404 Not found)

type TrackingHandler struct {
	orders port.OrderManager
}

func RegisterTracking(r chi.Router, orders port.OrderManager) {
	h := TrackingHandler{orders}
	r.Get("/v1/orders/{id}/tracking", h.Track)
}

func (h TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	const op = "TrackingHandler.Track"

	t, err := h.orders.TrackOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, trackingFromDomain(t))
}
