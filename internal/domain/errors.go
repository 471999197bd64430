package domain

import "errors"

var (
	ErrParcelNotFound      = errors.New("parcel not found")
	ErrUnresolvableAddress = errors.New("address does not resolve to a location")
	ErrCapacityExceeded    = errors.New("vehicle capacity exceeded")
	ErrInvalidSpeed        = errors.New("vehicle speed must be positive")
	ErrInvalidTime         = errors.New("invalid time of day")
)
