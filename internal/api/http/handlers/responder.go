package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps service errors to a status code. Unknown errors are
// logged and hidden behind a generic message.
func writeDomainError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := mapHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, derr.ErrCatalogNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, derr.ErrSkipNotFound), errors.Is(err, derr.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, derr.ErrNoSelection),
		errors.Is(err, derr.ErrInvalidTransition),
		errors.Is(err, derr.ErrBookingIncomplete):
		return http.StatusConflict
	case errors.Is(err, derr.ErrInvalidPaymentMethod),
		errors.Is(err, derr.ErrInvalidDeliveryDate),
		errors.Is(err, derr.ErrInvalidCriteria):
		return http.StatusBadRequest
	case errors.Is(err, derr.ErrSessionLimitReached):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
