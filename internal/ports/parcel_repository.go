package ports

import (
	"context"
	"parcel-delivery-sim/internal/domain"
)

// Port: a boundary for retrieving the parcel manifest from a data source.
type ParcelRepository interface {
	// Retrieve all parcels to be delivered in this run.
	ListParcels(ctx context.Context) ([]*domain.Parcel, error)
}
