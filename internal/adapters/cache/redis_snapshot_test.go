package cache

import (
	"context"
	"parcel-delivery-sim/internal/domain"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) (*RedisSnapshotPublisher, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSnapshotPublisher(client), mr
}

func TestRedisSnapshotPublisher_SaveRun(t *testing.T) {
	pub, mr := newTestPublisher(t)
	ctx := context.Background()

	parcels := []domain.Parcel{
		{
			ID:            9,
			Destination:   domain.Address{Street: "300 State St"},
			Deadline:      "EOD",
			Correction:    &domain.AddressCorrection{EffectiveAt: domain.At(10, 20, 0), Address: domain.Address{Street: "410 S State St"}},
			VehicleID:     2,
			DepartureTime: domain.At(10, 20, 0).Ptr(),
			DeliveryTime:  domain.At(11, 2, 0).Ptr(),
		},
		{ID: 12, Destination: domain.Address{Street: "3575 W Valley Central Station bus Loop"}, Deadline: "EOD"},
	}
	vehicles := []domain.Vehicle{
		{ID: 1, Mileage: 30.5, Clock: domain.At(10, 0, 0)},
		{ID: 2, Mileage: 12, Clock: domain.At(11, 2, 0)},
	}

	require.NoError(t, pub.SaveRun(ctx, "run-7", parcels, vehicles))

	assert.Equal(t, "11:02:00", mr.HGet(ParcelKey(9), "delivery"))
	assert.Equal(t, "10:20:00", mr.HGet(ParcelKey(9), "departure"))
	assert.Equal(t, "410 S State St", mr.HGet(ParcelKey(9), "street"))
	assert.Equal(t, "2", mr.HGet(ParcelKey(9), "vehicle"))
	assert.Equal(t, "", mr.HGet(ParcelKey(12), "delivery"))
	assert.Equal(t, "30.5", mr.HGet(VehicleKey(1), "mileage"))

	last, err := mr.Get(LastRunKey)
	require.NoError(t, err)
	assert.Equal(t, "run-7", last)

	total, err := pub.FleetMileage(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, total, 1e-9)
}

func TestRedisSnapshotPublisher_ServerDown(t *testing.T) {
	pub, mr := newTestPublisher(t)
	mr.Close()

	err := pub.SaveRun(context.Background(), "run-8", nil, nil)
	assert.Error(t, err)
}

func TestRedisSnapshotPublisher_NilClient(t *testing.T) {
	err := (&RedisSnapshotPublisher{}).SaveRun(context.Background(), "x", nil, nil)
	assert.Error(t, err)
}
