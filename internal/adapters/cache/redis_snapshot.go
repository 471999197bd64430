package cache

import (
	"context"
	"errors"
	"fmt"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/platform/obs"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	FleetMileageKey = "fleet:mileage"
	LastRunKey      = "fleet:last_run"
)

func ParcelKey(id int) string  { return "parcel:" + strconv.Itoa(id) }
func VehicleKey(id int) string { return "vehicle:" + strconv.Itoa(id) }

// RedisSnapshotPublisher writes the final state of a run to Redis so other
// processes can read delivery times without touching the simulator.
// Existing keys from an earlier run are overwritten.
type RedisSnapshotPublisher struct {
	Client *redis.Client
}

func NewRedisSnapshotPublisher(client *redis.Client) *RedisSnapshotPublisher {
	return &RedisSnapshotPublisher{Client: client}
}

// SaveRun publishes one hash per parcel and per vehicle plus the fleet total.
// All writes go out in a single MULTI/EXEC.
func (r *RedisSnapshotPublisher) SaveRun(
	ctx context.Context,
	runID string,
	parcels []domain.Parcel,
	vehicles []domain.Vehicle,
) (err error) {
	defer obs.Time(ctx, "snapshot.redis.SaveRun")(&err)

	if r.Client == nil {
		return errors.New("redis snapshot: client is nil")
	}

	total := 0.0
	for _, v := range vehicles {
		total += v.Mileage
	}

	_, err = r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i := range parcels {
			p := &parcels[i]
			fields := map[string]any{
				"run_id":    runID,
				"vehicle":   p.VehicleID,
				"street":    p.Destination.Street,
				"deadline":  p.Deadline,
				"departure": "",
				"delivery":  "",
			}
			if p.DepartureTime != nil {
				fields["departure"] = p.DepartureTime.String()
			}
			if p.DeliveryTime != nil {
				fields["delivery"] = p.DeliveryTime.String()
				fields["street"] = p.DestinationAt(*p.DeliveryTime).Street
			}
			pipe.HSet(ctx, ParcelKey(p.ID), fields)
		}

		for _, v := range vehicles {
			pipe.HSet(ctx, VehicleKey(v.ID), map[string]any{
				"run_id":  runID,
				"mileage": strconv.FormatFloat(v.Mileage, 'f', -1, 64),
				"clock":   v.Clock.String(),
			})
		}

		pipe.Set(ctx, FleetMileageKey, strconv.FormatFloat(total, 'f', -1, 64), 0)
		pipe.Set(ctx, LastRunKey, runID, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis snapshot run=%s: %w", runID, err)
	}

	return nil
}

// FleetMileage reads back the published fleet total.
func (r *RedisSnapshotPublisher) FleetMileage(ctx context.Context) (float64, error) {
	s, err := r.Client.Get(ctx, FleetMileageKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis snapshot: get %s: %w", FleetMileageKey, err)
	}

	total, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("redis snapshot: parse %s=%q: %w", FleetMileageKey, s, err)
	}
	return total, nil
}
