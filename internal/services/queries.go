package services

import (
	"fmt"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/store"
	"slices"
)

// QueryService answers read-only questions about a finished run.
// It is safe for concurrent use.
type QueryService struct {
	Store   *store.ParcelStore
	mileage map[int]float64
}

// ParcelStatus reports a single parcel as seen at the given time.
func (q *QueryService) ParcelStatus(id int, at domain.TimeOfDay) (domain.ParcelView, error) {
	p, ok := q.Store.Get(id)
	if !ok {
		return domain.ParcelView{}, fmt.Errorf("parcel status: id=%d: %w", id, domain.ErrParcelNotFound)
	}
	return domain.ViewAt(p, at), nil
}

// AllStatuses reports every parcel, ordered by ID, as seen at the given time.
func (q *QueryService) AllStatuses(at domain.TimeOfDay) []domain.ParcelView {
	all := q.Store.All()
	out := make([]domain.ParcelView, 0, len(all))
	for _, p := range all {
		out = append(out, domain.ViewAt(p, at))
	}
	return out
}

// TotalMileage is the distance driven by the whole fleet.
func (q *QueryService) TotalMileage() float64 {
	total := 0.0
	for _, id := range q.VehicleIDs() {
		total += q.mileage[id]
	}
	return total
}

func (q *QueryService) VehicleMileage(id int) (float64, bool) {
	m, ok := q.mileage[id]
	return m, ok
}

func (q *QueryService) VehicleIDs() []int {
	ids := make([]int, 0, len(q.mileage))
	for id := range q.mileage {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
