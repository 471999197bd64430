package repositories

import (
	"context"
	"database/sql"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/platform/db"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "sim.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, InitSchema(context.Background(), conn))
}

func TestSqliteParcelRepository_SeedAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteParcelRepository(openTestDB(t))

	seed := []*domain.Parcel{
		{
			ID:          2,
			Destination: domain.Address{Street: "2530 S 500 E", City: "Salt Lake City", State: "UT", Zip: "84106"},
			Deadline:    "EOD",
			Weight:      44,
		},
		{
			ID:          1,
			Destination: domain.Address{Street: "195 W Oakland Ave", City: "Salt Lake City", State: "UT", Zip: "84115"},
			Deadline:    "10:30 AM",
			Weight:      21,
			Notes:       "Delayed on flight---will not arrive to depot until 9:05 am",
			ReleaseAt:   domain.At(9, 5, 0).Ptr(),
		},
	}
	require.NoError(t, repo.SeedParcels(ctx, seed))

	got, err := repo.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, seed[1].Destination, got[0].Destination)
	require.NotNil(t, got[0].ReleaseAt)
	assert.Equal(t, domain.At(9, 5, 0), *got[0].ReleaseAt)
	assert.Nil(t, got[1].ReleaseAt)
	assert.Equal(t, 44, got[1].Weight)

	// Re-seeding replaces rather than duplicates.
	seed[0].Weight = 45
	require.NoError(t, repo.SeedParcels(ctx, seed[:1]))
	got, err = repo.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 45, got[1].Weight)
}

func TestSqliteParcelRepository_NilDB(t *testing.T) {
	_, err := (&SqliteParcelRepository{}).ListParcels(context.Background())
	assert.Error(t, err)
}

func TestSqliteResultRepository_SaveRun(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteResultRepository(openTestDB(t))

	corrected := domain.Address{Street: "410 S State St", City: "Salt Lake City", State: "UT", Zip: "84111"}
	parcels := []domain.Parcel{
		{
			ID:            9,
			Destination:   domain.Address{Street: "300 State St"},
			Correction:    &domain.AddressCorrection{EffectiveAt: domain.At(10, 20, 0), Address: corrected},
			VehicleID:     3,
			DepartureTime: domain.At(10, 20, 0).Ptr(),
			DeliveryTime:  domain.At(10, 50, 30).Ptr(),
		},
		{
			ID:          4,
			Destination: domain.Address{Street: "380 W 2880 S"},
			VehicleID:   1,
		},
	}
	vehicles := []domain.Vehicle{
		{ID: 1, Mileage: 40.5, Clock: domain.At(11, 0, 0)},
		{ID: 3, Mileage: 12.25, Clock: domain.At(11, 30, 0)},
	}

	require.NoError(t, repo.SaveRun(ctx, "run-1", parcels, vehicles))

	total, err := repo.RunMileage(ctx, "run-1")
	require.NoError(t, err)
	assert.InDelta(t, 52.75, total, 1e-9)

	got, err := repo.LoadRunParcels(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 4, got[0].ID)
	assert.Nil(t, got[0].DeliveryTime)
	assert.Nil(t, got[0].DepartureTime)

	assert.Equal(t, 9, got[1].ID)
	assert.Equal(t, 3, got[1].VehicleID)
	assert.Equal(t, "410 S State St", got[1].Destination.Street)
	require.NotNil(t, got[1].DeliveryTime)
	assert.Equal(t, domain.At(10, 50, 30), *got[1].DeliveryTime)
	assert.Equal(t, domain.At(10, 20, 0), *got[1].DepartureTime)
}

func TestSqliteResultRepository_RejectsEmptyRunID(t *testing.T) {
	repo := NewSqliteResultRepository(openTestDB(t))
	err := repo.SaveRun(context.Background(), "", nil, nil)
	assert.Error(t, err)
}
