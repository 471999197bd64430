package services

import (
	"context"
	"errors"
	"parcel-delivery-sim/internal/domain"
	"testing"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	parcels := []*domain.Parcel{
		parcelTo(1, "A"), parcelTo(2, "B"),
		parcelTo(3, "C"), parcelTo(4, "D"),
		parcelTo(9, "Nowhere"),
	}
	sim, err := NewSimulation(SimulationConfig{
		VehicleCount:    2,
		VehicleSpeed:    18,
		VehicleCapacity: 16,
		DepartAt:        domain.At(8, 0, 0),
		Assignment:      AssignmentRanges,
		Ranges:          []IDRange{{From: 1, To: 2}, {From: 3, To: 4}},
	}, parcels, testOracle(), testIndex())
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return sim
}

func TestSimulationEndToEnd(t *testing.T) {
	sim := newTestSimulation(t)
	cutoff := domain.At(10, 20, 0)
	if err := sim.RegisterCorrection(9, domain.AddressCorrection{EffectiveAt: cutoff, Address: domain.Address{Street: "C"}}); err != nil {
		t.Fatalf("register correction: %v", err)
	}

	if sim.Result() != nil {
		t.Fatal("result set before run")
	}
	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sim.Result() != res {
		t.Fatal("Result does not return the dispatch result of Run")
	}
	if len(res.Undelivered) != 0 {
		t.Fatalf("undelivered = %v", res.Undelivered)
	}

	// Every parcel has exactly one delivery time and a sane departure.
	for _, p := range sim.Store.All() {
		if p.DeliveryTime == nil {
			t.Errorf("parcel %d never delivered", p.ID)
		}
	}
	checkTimestamps(t, sim.Store)

	// Fleet mileage equals the sum of every leg.
	legs := 0.0
	for _, w := range res.Waves {
		for _, r := range w.Runs {
			for _, st := range r.Stops {
				legs += st.Distance
			}
		}
	}
	q := sim.Queries()
	if q.TotalMileage() != legs || sim.TotalMileage() != legs {
		t.Fatalf("mileage %v / %v, want %v", q.TotalMileage(), sim.TotalMileage(), legs)
	}
	// Order of queries does not matter.
	_ = q.AllStatuses(domain.At(12, 0, 0))
	if q.TotalMileage() != legs {
		t.Fatalf("mileage changed after status queries")
	}

	before, err := q.ParcelStatus(9, domain.At(10, 0, 0))
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if before.Status.State != domain.StateAtDepot || before.Destination.Street != "Nowhere" {
		t.Fatalf("before cutoff: %v at %q", before.Status, before.Destination.Street)
	}
	after, _ := q.ParcelStatus(9, domain.At(17, 0, 0))
	if after.Status.State != domain.StateDelivered || after.Destination.Street != "C" {
		t.Fatalf("after cutoff: %v at %q", after.Status, after.Destination.Street)
	}
}

func TestSimulationQueries(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Store.Delete(9)
	if _, err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	q := sim.Queries()

	_, err := q.ParcelStatus(42, domain.At(9, 0, 0))
	if !errors.Is(err, domain.ErrParcelNotFound) {
		t.Fatalf("err = %v, want ErrParcelNotFound", err)
	}

	p1, _ := sim.Store.Get(1)
	tests := []struct {
		at   domain.TimeOfDay
		want domain.State
	}{
		{domain.At(7, 0, 0), domain.StateAtDepot},
		{p1.DepartureTime.Add(1), domain.StateEnRoute},
		{*p1.DeliveryTime, domain.StateDelivered},
	}
	for _, tc := range tests {
		v, err := q.ParcelStatus(1, tc.at)
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if v.Status.State != tc.want {
			t.Errorf("status at %v = %v, want %v", tc.at, v.Status.State, tc.want)
		}
	}

	all := q.AllStatuses(domain.At(8, 0, 0))
	if len(all) != 4 || all[0].Parcel.ID != 1 || all[3].Parcel.ID != 4 {
		t.Fatalf("AllStatuses order = %+v", all)
	}

	if _, err := sim.Run(context.Background()); err == nil {
		t.Fatal("second run must fail")
	}
}

func TestRegisterCorrectionOnlyOnce(t *testing.T) {
	sim := newTestSimulation(t)
	c := domain.AddressCorrection{EffectiveAt: domain.At(10, 20, 0), Address: domain.Address{Street: "C"}}

	if err := sim.RegisterCorrection(9, c); err != nil {
		t.Fatalf("first correction: %v", err)
	}
	if err := sim.RegisterCorrection(9, c); !errors.Is(err, ErrCorrectionExists) {
		t.Fatalf("err = %v, want ErrCorrectionExists", err)
	}
	if err := sim.RegisterCorrection(77, c); !errors.Is(err, domain.ErrParcelNotFound) {
		t.Fatalf("err = %v, want ErrParcelNotFound", err)
	}
}

func TestNewSimulationRejectsBadConfig(t *testing.T) {
	base := SimulationConfig{VehicleCount: 1, VehicleSpeed: 18, DepartAt: domain.At(8, 0, 0)}

	zeroSpeed := base
	zeroSpeed.VehicleSpeed = 0
	if _, err := NewSimulation(zeroSpeed, nil, testOracle(), testIndex()); !errors.Is(err, domain.ErrInvalidSpeed) {
		t.Fatalf("err = %v, want ErrInvalidSpeed", err)
	}

	unknown := base
	unknown.Assignment = "random"
	if _, err := NewSimulation(unknown, nil, testOracle(), testIndex()); err == nil {
		t.Fatal("expected error for unknown assignment")
	}
}
