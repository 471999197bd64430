package api

import (
	"context"
	"net/http"
	"parcel-delivery-sim/internal/adapters/distance"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/services"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRunCountsOnlyDeliveredParcels(t *testing.T) {
	oracle := distance.NewMockDistanceOracle([]distance.MockPair{
		{From: 0, To: 1, Distance: 3},
	})
	index := distance.MockLocationIndex{"A": 1}

	// Vehicle 2 cannot resolve its only stop, so parcel 2 stays at the depot.
	parcels := []*domain.Parcel{
		{ID: 1, Destination: domain.Address{Street: "A"}},
		{ID: 2, Destination: domain.Address{Street: "nowhere"}},
	}
	sim, err := services.NewSimulation(services.SimulationConfig{
		VehicleCount:    2,
		VehicleSpeed:    18,
		VehicleCapacity: 16,
		DepartAt:        domain.At(8, 0, 0),
		Assignment:      services.AssignmentRanges,
		Ranges:          []services.IDRange{{From: 1, To: 1}, {From: 2, To: 2}},
	}, parcels, oracle, index)
	require.NoError(t, err)
	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	m := NewMetrics()
	m.ObserveRun(sim.Queries())

	rec := serve(t, m.Handler(), http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "parcelsim_parcels_delivered 1")
	assert.Contains(t, body, "parcelsim_fleet_mileage 3")
	assert.Contains(t, body, `parcelsim_vehicle_mileage{vehicle="2"} 0`)
}
