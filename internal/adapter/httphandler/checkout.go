package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

type CheckoutHandler struct {
	checkout port.CheckoutWorkflow
}

// RegisterCheckout expects the [Session] middleware on r.
func RegisterCheckout(r chi.Router, checkout port.CheckoutWorkflow) {
	h := CheckoutHandler{checkout}
	r.Route("/v1/checkout", func(r chi.Router) {
		r.Get("/", h.State)
		r.Get("/payment-instructions", h.PaymentInstructions)
		r.Post("/payment-proof", h.UploadPaymentProof)

		r.Group(func(r chi.Router) {
			r.Use(AllowJSON)
			r.Post("/start", h.Start)
			r.Post("/details", h.SubmitDetails)
			r.Post("/payment-method", h.SelectPaymentMethod)
			r.Post("/paid", h.ConfirmPaid)
			r.Post("/back", h.Back)
			r.Post("/place-order", h.PlaceOrder)
		})
	})
}

func (h CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.State"

	c, t, err := h.checkout.State(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	resp := checkoutFromDomain(c)
	totals := totalsFromDomain(t)
	resp.Totals = &totals
	writeJSON(w, http.StatusOK, resp)
}

func (h CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.Start"
	h.respond(w, r, op)(h.checkout.Start(r.Context(), sessionID(r)))
}

func (h CheckoutHandler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.SubmitDetails"

	var req DeliveryDetails
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	h.respond(w, r, op)(h.checkout.SubmitDetails(
		r.Context(), sessionID(r), domain.DeliveryDetails(req),
	))
}

func (h CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.SelectPaymentMethod"

	var req PaymentMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	h.respond(w, r, op)(h.checkout.SelectPaymentMethod(
		r.Context(), sessionID(r), domain.PaymentMethod(req.PaymentMethod),
	))
}

func (h CheckoutHandler) PaymentInstructions(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PaymentInstructions"

	pi, err := h.checkout.PaymentInstructions(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, instructionsFromDomain(pi))
}

func (h CheckoutHandler) ConfirmPaid(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.ConfirmPaid"
	h.respond(w, r, op)(h.checkout.ConfirmPaid(r.Context(), sessionID(r)))
}

func (h CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.Back"
	h.respond(w, r, op)(h.checkout.Back(r.Context(), sessionID(r)))
}

func (h CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PlaceOrder"

	var req PlaceOrderRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, op, err)
			return
		}
	}

	c, err := h.checkout.PlaceOrder(r.Context(), sessionID(r), req.toDomain())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkoutFromDomain(c))
}

func (h CheckoutHandler) UploadPaymentProof(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.UploadPaymentProof"

	img, err := readImage(w, r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	url, err := h.checkout.UploadPaymentProof(r.Context(), sessionID(r), img)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

func (h CheckoutHandler) respond(
	w http.ResponseWriter, r *http.Request, op string,
) func(domain.Checkout, error) {
	return func(c domain.Checkout, err error) {
		if err != nil {
			writeError(w, r, op, err)
			return
		}
		writeJSON(w, http.StatusOK, checkoutFromDomain(c))
	}
}
