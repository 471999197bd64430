package services

import (
	"parcel-delivery-sim/internal/adapters/distance"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/store"
	"testing"
)

// Locations: 0 depot, 1 "A", 2 "B", 3 "C", 4 "D".
func testOracle() *distance.MockDistanceOracle {
	return distance.NewMockDistanceOracle([]distance.MockPair{
		{From: 0, To: 1, Distance: 3.0},
		{From: 0, To: 2, Distance: 5.0},
		{From: 0, To: 3, Distance: 6.0},
		{From: 0, To: 4, Distance: 9.0},
		{From: 1, To: 2, Distance: 4.0},
		{From: 1, To: 3, Distance: 2.0},
		{From: 1, To: 4, Distance: 8.0},
		{From: 2, To: 3, Distance: 1.0},
		{From: 2, To: 4, Distance: 4.5},
		{From: 3, To: 4, Distance: 3.5},
	})
}

func testIndex() distance.MockLocationIndex {
	return distance.MockLocationIndex{"A": 1, "B": 2, "C": 3, "D": 4}
}

func parcelTo(id int, street string) *domain.Parcel {
	return &domain.Parcel{ID: id, Destination: domain.Address{Street: street}}
}

func newTestVehicle(t *testing.T, id int, departAt domain.TimeOfDay) *domain.Vehicle {
	t.Helper()
	v, err := domain.NewVehicle(id, 18, 16, departAt)
	if err != nil {
		t.Fatalf("new vehicle: %v", err)
	}
	return v
}

func loadedStore(parcels ...*domain.Parcel) *store.ParcelStore {
	s := store.New(len(parcels))
	for _, p := range parcels {
		s.Put(p)
	}
	return s
}

// checkTimestamps asserts departure <= delivery for every delivered parcel.
func checkTimestamps(t *testing.T, s *store.ParcelStore) {
	t.Helper()
	for _, p := range s.All() {
		if p.DeliveryTime == nil {
			continue
		}
		if p.DepartureTime == nil {
			t.Errorf("parcel %d delivered without departure", p.ID)
			continue
		}
		if *p.DepartureTime > *p.DeliveryTime {
			t.Errorf("parcel %d departs %v after delivery %v", p.ID, *p.DepartureTime, *p.DeliveryTime)
		}
	}
}
