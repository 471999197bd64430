package ports

import (
	"context"
	"parcel-delivery-sim/internal/domain"
)

// Port: somewhere to record the outcome of a finished simulation run.
type ResultSink interface {
	SaveRun(ctx context.Context, runID string, parcels []domain.Parcel, vehicles []domain.Vehicle) error
}
