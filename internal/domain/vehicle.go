package domain

import (
	"fmt"
	"math"
	"time"
)

// DepotLocation is the location index every vehicle starts from.
const DepotLocation = 0

// Vehicle carries parcels from the depot and keeps its own simulated clock.
// Clock and Mileage only ever move forward.
type Vehicle struct {
	ID       int
	Speed    float64 // distance units per hour
	Capacity int     // 0 means unbounded
	Mileage  float64
	Clock    TimeOfDay
	Location int
	Load     []*Parcel
}

// NewVehicle returns a vehicle parked at the depot with its clock at departAt.
// A non-positive speed is a configuration error.
func NewVehicle(id int, speed float64, capacity int, departAt TimeOfDay) (*Vehicle, error) {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return nil, fmt.Errorf("new vehicle %d: speed=%v: %w", id, speed, ErrInvalidSpeed)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("new vehicle %d: capacity must not be negative (capacity=%d)", id, capacity)
	}

	return &Vehicle{
		ID:       id,
		Speed:    speed,
		Capacity: capacity,
		Clock:    departAt,
		Location: DepotLocation,
	}, nil
}

// LoadParcel puts a single parcel on the vehicle.
func (v *Vehicle) LoadParcel(p *Parcel) error {
	if v.Capacity > 0 && len(v.Load) >= v.Capacity {
		return fmt.Errorf("load vehicle %d: parcel %d (capacity=%d): %w", v.ID, p.ID, v.Capacity, ErrCapacityExceeded)
	}
	v.Load = append(v.Load, p)
	return nil
}

// LoadMultiple loads parcels in order and stops at the first failure.
func (v *Vehicle) LoadMultiple(pkgs []*Parcel) error {
	for _, p := range pkgs {
		if err := v.LoadParcel(p); err != nil {
			return err
		}
	}

	return nil
}

// Unload removes the parcel at position i, keeping the order of the rest.
func (v *Vehicle) Unload(i int) *Parcel {
	p := v.Load[i]
	v.Load = append(v.Load[:i], v.Load[i+1:]...)
	return p
}

// AdvanceTo moves the clock to t unless it is already later.
func (v *Vehicle) AdvanceTo(t TimeOfDay) {
	v.Clock = v.Clock.Max(t)
}

// TravelTime converts a distance into driving time at the vehicle's speed.
func (v *Vehicle) TravelTime(distance float64) time.Duration {
	return time.Duration(math.Round(distance / v.Speed * float64(time.Hour)))
}

// Drive moves the vehicle to location, adding distance to the mileage and
// the travel time to the clock. It returns the arrival time.
func (v *Vehicle) Drive(location int, distance float64) TimeOfDay {
	if distance > 0 {
		v.Mileage += distance
		v.Clock = v.Clock.Add(v.TravelTime(distance))
	}
	v.Location = location
	return v.Clock
}

// ReturnToDepot resets the position without touching clock or mileage.
// Callers that account for the return leg use Drive instead.
func (v *Vehicle) ReturnToDepot() {
	v.Location = DepotLocation
}
