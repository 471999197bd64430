package handlers

import (
	"net/http"
	"parcel-delivery-sim/internal/services"
)

type HealthHandler struct {
	Queries *services.QueryService
}

// Health is a liveness check that also reports the size of the loaded run.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	res := map[string]any{
		"status":   "ok",
		"parcels":  h.Queries.Store.Len(),
		"vehicles": len(h.Queries.VehicleIDs()),
	}
	writeJSON(w, r, http.StatusOK, res)
}
