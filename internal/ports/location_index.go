package ports

import "parcel-delivery-sim/internal/domain"

// Contract for resolving delivery addresses to distance-oracle indices.
type LocationIndex interface {
	// Return the location index for the address, or an error wrapping
	// domain.ErrUnresolvableAddress.
	Resolve(addr domain.Address) (int, error)
}
