package handlers

import (
	"net/http"
	"parcel-delivery-sim/internal/api/dto"
	"parcel-delivery-sim/internal/services"
)

type MileageHandler struct {
	Queries *services.QueryService
}

func (h *MileageHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ids := h.Queries.VehicleIDs()
	res := dto.MileageResponse{
		TotalMileage: h.Queries.TotalMileage(),
		Vehicles:     make([]dto.VehicleMileageResponse, 0, len(ids)),
	}
	for _, id := range ids {
		m, _ := h.Queries.VehicleMileage(id)
		res.Vehicles = append(res.Vehicles, dto.VehicleMileageResponse{VehicleID: id, Mileage: m})
	}

	writeJSON(w, r, http.StatusOK, res)
}
