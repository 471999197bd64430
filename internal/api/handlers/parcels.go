package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"parcel-delivery-sim/internal/api/dto"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/services"
	"strconv"
	"strings"
)

// EndOfDay is the query time used when a request omits ?at=.
var EndOfDay = domain.MustParseTimeOfDay("23:59:59")

// ParcelHandler exposes read-only parcel status endpoints.
type ParcelHandler struct {
	Queries *services.QueryService
}

// List reports every parcel as seen at ?at= (HH:MM or HH:MM:SS).
func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	at, err := queryTime(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	views := h.Queries.AllStatuses(at)
	res := dto.ListParcelStatusResponse{
		At:      at.String(),
		Parcels: make([]dto.ParcelStatusResponse, 0, len(views)),
	}
	for _, v := range views {
		res.Parcels = append(res.Parcels, toParcelStatus(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get reports a single parcel by the {id} path segment.
func (h *ParcelHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "parcel id must be an integer")
		return
	}

	at, err := queryTime(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.Queries.ParcelStatus(id, at)
	if errors.Is(err, domain.ErrParcelNotFound) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("parcel %d not found", id))
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toParcelStatus(view))
}

func queryTime(r *http.Request) (domain.TimeOfDay, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("at"))
	if raw == "" {
		return EndOfDay, nil
	}

	at, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		return 0, fmt.Errorf("at must be HH:MM or HH:MM:SS (got %q)", raw)
	}
	return at, nil
}

func toParcelStatus(v domain.ParcelView) dto.ParcelStatusResponse {
	p := v.Parcel
	res := dto.ParcelStatusResponse{
		ParcelID: p.ID,
		Destination: dto.AddressResponse{
			Street: v.Destination.Street,
			City:   v.Destination.City,
			State:  v.Destination.State,
			Zip:    v.Destination.Zip,
		},
		Deadline:  p.Deadline,
		Weight:    p.Weight,
		Notes:     p.Notes,
		VehicleID: p.VehicleID,
		Status:    v.Status.String(),
	}

	// Timestamps are hidden until they have happened at the query time.
	switch v.Status.State {
	case domain.StateDelivered:
		dep, del := p.DepartureTime.String(), p.DeliveryTime.String()
		res.DepartureTime, res.DeliveryTime = &dep, &del
	case domain.StateEnRoute:
		dep := p.DepartureTime.String()
		res.DepartureTime = &dep
	}

	return res
}
