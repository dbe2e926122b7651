package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/fashion-store/internal/core/port"
)

type BagHandler struct {
	bag port.BagManager
}

// RegisterBag expects the [Session] middleware on r.
func RegisterBag(r chi.Router, bag port.BagManager) {
	h := BagHandler{bag}
	r.Get("/v1/bag", h.Get)
	r.With(AllowJSON).Post("/v1/bag/items", h.AddItem)
	r.With(AllowJSON).Patch("/v1/bag/items/{index}", h.UpdateQuantity)
	r.Delete("/v1/bag/items/{index}", h.RemoveItem)
}

func (h BagHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "BagHandler.Get"

	b, err := h.bag.Bag(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bagFromDomain(b))
}

func (h BagHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "BagHandler.AddItem"

	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	b, err := h.bag.AddItem(
		r.Context(), sessionID(r), req.ProductID, req.Size, req.Color,
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bagFromDomain(b))
}

func (h BagHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "BagHandler.UpdateQuantity"

	index, err := pathIndex(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	b, err := h.bag.UpdateQuantity(r.Context(), sessionID(r), index, req.Quantity)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bagFromDomain(b))
}

func (h BagHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "BagHandler.RemoveItem"

	index, err := pathIndex(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	b, err := h.bag.RemoveItem(r.Context(), sessionID(r), index)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bagFromDomain(b))
}
