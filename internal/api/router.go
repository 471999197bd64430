package api

import (
	"net/http"
	"parcel-delivery-sim/internal/api/handlers"
	"parcel-delivery-sim/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of the simulation internals).
func NewRouter(queries *services.QueryService, metrics *Metrics) http.Handler {
	mux := http.NewServeMux()

	if metrics == nil {
		metrics = NewMetrics()
	}
	metrics.ObserveRun(queries)

	healthHandler := &handlers.HealthHandler{Queries: queries}
	parcelHandler := &handlers.ParcelHandler{Queries: queries}
	mileageHandler := &handlers.MileageHandler{Queries: queries}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/parcels", parcelHandler.List)
	mux.HandleFunc("/parcels/{id}", parcelHandler.Get)
	mux.HandleFunc("/mileage", mileageHandler.Get)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(mux, metrics)
}
