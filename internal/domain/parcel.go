package domain

import "strings"

// Address is a delivery destination as listed in the manifest.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

func (a Address) String() string {
	return strings.Join([]string{a.Street, a.City, a.State, a.Zip}, ", ")
}

// AddressCorrection replaces a parcel's destination from EffectiveAt onwards.
// Before EffectiveAt the listed destination is the only one known.
type AddressCorrection struct {
	EffectiveAt TimeOfDay
	Address     Address
}

// Parcel is a single delivery unit and the mutable record kept in the store.
//
// DepartureTime and DeliveryTime stay nil while the parcel is at the depot.
// The route engine stamps both in one write when it completes the stop, so
// DeliveryTime != nil implies DepartureTime != nil and
// *DepartureTime <= *DeliveryTime.
type Parcel struct {
	ID          int
	Destination Address
	Deadline    string
	Weight      int
	Notes       string

	// ReleaseAt holds the parcel back from dispatch until a vehicle's
	// clock reaches it.
	ReleaseAt  *TimeOfDay
	Correction *AddressCorrection

	VehicleID     int
	DepartureTime *TimeOfDay
	DeliveryTime  *TimeOfDay
}

// DestinationAt returns the destination known at time t.
func (p *Parcel) DestinationAt(t TimeOfDay) Address {
	if p.Correction != nil && !t.Before(p.Correction.EffectiveAt) {
		return p.Correction.Address
	}
	return p.Destination
}

// HoldUntil reports the earliest time the parcel may be loaded, and whether
// it is gated at all. A pending correction gates the parcel at its cutoff.
func (p *Parcel) HoldUntil() (TimeOfDay, bool) {
	var (
		at    TimeOfDay
		gated bool
	)
	if p.ReleaseAt != nil {
		at, gated = *p.ReleaseAt, true
	}
	if p.Correction != nil {
		at, gated = at.Max(p.Correction.EffectiveAt), true
	}
	return at, gated
}

func (p *Parcel) Delivered() bool { return p.DeliveryTime != nil }

// Clone returns a copy that shares no pointers with p.
func (p *Parcel) Clone() Parcel {
	c := *p
	if p.ReleaseAt != nil {
		c.ReleaseAt = p.ReleaseAt.Ptr()
	}
	if p.Correction != nil {
		corr := *p.Correction
		c.Correction = &corr
	}
	if p.DepartureTime != nil {
		c.DepartureTime = p.DepartureTime.Ptr()
	}
	if p.DeliveryTime != nil {
		c.DeliveryTime = p.DeliveryTime.Ptr()
	}
	return c
}
