package cli

import (
	"bytes"
	"context"
	"parcel-delivery-sim/internal/adapters/distance"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/services"
	"strings"
	"testing"
)

// Parcel 1 is delivered at 08:10:00 and parcel 2 at 08:16:40 by vehicle 1.
func newTestQueries(t *testing.T) *services.QueryService {
	t.Helper()

	oracle := distance.NewMockDistanceOracle([]distance.MockPair{
		{From: 0, To: 1, Distance: 3},
		{From: 0, To: 2, Distance: 6},
		{From: 1, To: 2, Distance: 2},
	})
	index := distance.MockLocationIndex{"195 W Oakland Ave": 1, "2530 S 500 E": 2}

	parcels := []*domain.Parcel{
		{ID: 1, Destination: domain.Address{Street: "195 W Oakland Ave", City: "Salt Lake City", Zip: "84115"}, Deadline: "10:30 AM", Weight: 21},
		{ID: 2, Destination: domain.Address{Street: "2530 S 500 E", City: "Salt Lake City", Zip: "84106"}, Deadline: "EOD", Weight: 44},
	}

	sim, err := services.NewSimulation(services.SimulationConfig{
		VehicleCount:    1,
		VehicleSpeed:    18,
		VehicleCapacity: 16,
		DepartAt:        domain.At(8, 0, 0),
		Assignment:      services.AssignmentRanges,
		Ranges:          []services.IDRange{{From: 1, To: 2}},
	}, parcels, oracle, index)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	if _, err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return sim.Queries()
}

func runMenu(t *testing.T, input string) string {
	t.Helper()

	var out bytes.Buffer
	m := NewMenu(newTestQueries(t), strings.NewReader(input), &out)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("menu run: %v", err)
	}
	return out.String()
}

func TestMenu_SingleParcel(t *testing.T) {
	out := runMenu(t, "1\n1\n09:00:00\n4\n")

	want := "Parcel ID: 1, Address: 195 W Oakland Ave, City: Salt Lake City, Zip: 84115, " +
		"Deadline: 10:30 AM, Weight: 21 lbs, Status: Delivered at 08:10:00, Vehicle: 1"
	if !strings.Contains(out, want) {
		t.Fatalf("missing status line\nwant: %s\ngot:\n%s", want, out)
	}
	if !strings.Contains(out, "Exiting.") {
		t.Errorf("menu did not exit cleanly:\n%s", out)
	}
}

func TestMenu_AllParcels(t *testing.T) {
	out := runMenu(t, "2\n08:12:00\n4\n")

	if !strings.Contains(out, "Parcel ID: 1,") || !strings.Contains(out, "Status: Delivered at 08:10:00") {
		t.Errorf("parcel 1 not reported delivered:\n%s", out)
	}
	if !strings.Contains(out, "Parcel ID: 2,") || !strings.Contains(out, "Status: En Route") {
		t.Errorf("parcel 2 not reported en route:\n%s", out)
	}
}

func TestMenu_Mileage(t *testing.T) {
	out := runMenu(t, "3\n4\n")
	if !strings.Contains(out, "Total mileage of all vehicles: 5.00 miles") {
		t.Errorf("unexpected mileage output:\n%s", out)
	}
}

func TestMenu_InvalidInputKeepsLooping(t *testing.T) {
	out := runMenu(t, "9\n1\nabc\n1\n99\n08:00:00\n2\nnoon\n3\n4\n")

	for _, want := range []string{
		"Invalid choice. Please try again.",
		`Error: invalid parcel ID "abc"`,
		"Parcel ID 99 not found.",
		`Error: invalid time "noon"`,
		"Total mileage of all vehicles: 5.00 miles",
		"Exiting.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMenu_EndOfInput(t *testing.T) {
	out := runMenu(t, "3\n")
	if !strings.Contains(out, "5.00 miles") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestMenu_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	m := NewMenu(newTestQueries(t), strings.NewReader("3\n"), &out)
	if err := m.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestStatusLine_AtDepotOmitsVehicle(t *testing.T) {
	p := domain.Parcel{ID: 7, Destination: domain.Address{Street: "1330 2100 S"}, Deadline: "EOD", Weight: 8, VehicleID: 2}
	line := StatusLine(domain.ViewAt(p, domain.At(7, 0, 0)))

	if !strings.HasSuffix(line, "Status: At Depot") {
		t.Errorf("got %q", line)
	}
}
