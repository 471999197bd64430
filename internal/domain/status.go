package domain

import "fmt"

// State is a parcel's lifecycle position at some point in time.
type State int

const (
	StateAtDepot State = iota
	StateEnRoute
	StateDelivered
)

func (s State) String() string {
	switch s {
	case StateAtDepot:
		return "At Depot"
	case StateEnRoute:
		return "En Route"
	case StateDelivered:
		return "Delivered"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the projection of a parcel record onto a query time.
// At is only meaningful when State is StateDelivered.
type Status struct {
	State State
	At    TimeOfDay
}

func (s Status) String() string {
	if s.State == StateDelivered {
		return "Delivered at " + s.At.String()
	}
	return s.State.String()
}

// ProjectStatus derives the parcel's state at the query time.
// It never mutates p and may be called concurrently on the same record.
func ProjectStatus(p Parcel, at TimeOfDay) Status {
	if p.DepartureTime == nil || at.Before(*p.DepartureTime) {
		return Status{State: StateAtDepot}
	}
	if p.DeliveryTime != nil && !at.Before(*p.DeliveryTime) {
		return Status{State: StateDelivered, At: *p.DeliveryTime}
	}
	return Status{State: StateEnRoute}
}

// ParcelView is what a status query reports for one parcel.
type ParcelView struct {
	Parcel      Parcel
	Destination Address
	Status      Status
}

// ViewAt combines the status and the destination visible at the query time.
func ViewAt(p Parcel, at TimeOfDay) ParcelView {
	return ParcelView{
		Parcel:      p,
		Destination: p.DestinationAt(at),
		Status:      ProjectStatus(p, at),
	}
}
