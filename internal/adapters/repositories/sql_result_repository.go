package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/platform/obs"
	"time"
)

const (
	upsertRunSQL = `
	INSERT INTO runs (run_id, finished_at, total_mileage)
	VALUES ($1, $2, $3)
	ON CONFLICT (run_id) DO UPDATE
	SET finished_at = EXCLUDED.finished_at,
		total_mileage = EXCLUDED.total_mileage;
	`
	upsertParcelResultSQL = `
	INSERT INTO parcel_results (run_id, parcel_id, vehicle_id, departure_seconds, delivery_seconds, street)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (run_id, parcel_id) DO UPDATE
	SET vehicle_id = EXCLUDED.vehicle_id,
		departure_seconds = EXCLUDED.departure_seconds,
		delivery_seconds = EXCLUDED.delivery_seconds,
		street = EXCLUDED.street;
	`
	upsertVehicleResultSQL = `
	INSERT INTO vehicle_results (run_id, vehicle_id, mileage, clock_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (run_id, vehicle_id) DO UPDATE
	SET mileage = EXCLUDED.mileage,
		clock_seconds = EXCLUDED.clock_seconds;
	`
)

// SQLResultRepository records finished runs in Postgres.
type SQLResultRepository struct {
	DB *sql.DB
}

func NewSQLResultRepository(db *sql.DB) *SQLResultRepository {
	return &SQLResultRepository{DB: db}
}

func (s *SQLResultRepository) SaveRun(
	ctx context.Context,
	runID string,
	parcels []domain.Parcel,
	vehicles []domain.Vehicle,
) (err error) {
	defer obs.Time(ctx, "results.sql.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("save run: db is nil")
	}
	if runID == "" {
		return errors.New("save run: run id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	total := 0.0
	for _, v := range vehicles {
		total += v.Mileage
	}
	if _, err := tx.ExecContext(ctx, upsertRunSQL, runID, time.Now().UTC(), total); err != nil {
		return fmt.Errorf("save run %s: insert run: %w", runID, err)
	}

	pstmt, err := tx.PrepareContext(ctx, upsertParcelResultSQL)
	if err != nil {
		return fmt.Errorf("save run %s: prepare parcel results: %w", runID, err)
	}
	defer pstmt.Close()

	for _, p := range parcels {
		street := p.Destination.Street
		if p.DeliveryTime != nil {
			street = p.DestinationAt(*p.DeliveryTime).Street
		}
		if _, err := pstmt.ExecContext(ctx, runID, p.ID, p.VehicleID, toSeconds(p.DepartureTime), toSeconds(p.DeliveryTime), street); err != nil {
			return fmt.Errorf("save run %s parcel_id=%d: %w", runID, p.ID, err)
		}
	}

	vstmt, err := tx.PrepareContext(ctx, upsertVehicleResultSQL)
	if err != nil {
		return fmt.Errorf("save run %s: prepare vehicle results: %w", runID, err)
	}
	defer vstmt.Close()

	for _, v := range vehicles {
		clock := v.Clock
		if _, err := vstmt.ExecContext(ctx, runID, v.ID, v.Mileage, toSeconds(&clock)); err != nil {
			return fmt.Errorf("save run %s vehicle_id=%d: %w", runID, v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run %s commit: %w", runID, err)
	}

	return nil
}
