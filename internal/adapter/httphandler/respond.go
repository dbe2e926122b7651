package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/fashion-store/internal/core/domain"
)

const maxJSONBody = 1 << 20

var errInvalidJSON = errors.New("invalid JSON data")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// writeError maps the domain error taxonomy to HTTP statuses.
// Unexpected errors are logged here and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := slog.With("op", op, "requestID", middleware.GetReqID(r.Context()))

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeMessage(w, http.StatusBadRequest, vErr.Reason)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, errInvalidJSON):
		writeMessage(w, http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrEmptyBag):
		writeMessage(w, http.StatusConflict, domain.ErrEmptyBag.Error())
	case errors.Is(err, domain.ErrInvalidStep):
		writeMessage(w, http.StatusConflict, domain.ErrInvalidStep.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrPersistence),
		errors.Is(err, context.DeadlineExceeded):
		log.Error("storage unavailable", "err", err)
		writeMessage(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		log.Error("request failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidJSON
	}
	return nil
}

func pathIndex(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, domain.Invalid("index must be a number")
	}
	return i, nil
}
