package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func NewRouter(log *zap.Logger, catalog SkipCatalog, sessions Sessions, timeout time.Duration) *http.ServeMux {
	catalogHandler := NewCatalogHandler(log, catalog, timeout)
	sessionHandler := NewSessionHandler(log, sessions, timeout)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler)

	mux.HandleFunc("GET /v1/skips", catalogHandler.ListSkips)
	mux.HandleFunc("GET /v1/skips/{id}", catalogHandler.GetSkip)
	mux.HandleFunc("GET /v1/delivery-dates", sessionHandler.DeliveryDates)

	mux.HandleFunc("POST /v1/sessions", sessionHandler.Create)
	mux.HandleFunc("GET /v1/sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("PUT /v1/sessions/{id}/filters", sessionHandler.SetFilters)
	mux.HandleFunc("GET /v1/sessions/{id}/skips", sessionHandler.ListSkips)
	mux.HandleFunc("POST /v1/sessions/{id}/select", sessionHandler.Select)
	mux.HandleFunc("POST /v1/sessions/{id}/back", sessionHandler.Back)
	mux.HandleFunc("PATCH /v1/sessions/{id}/booking", sessionHandler.UpdateBooking)
	mux.HandleFunc("POST /v1/sessions/{id}/confirm", sessionHandler.Confirm)

	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
