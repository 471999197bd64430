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

// SqliteResultRepository records finished runs in SQLite.
type SqliteResultRepository struct{ DB *sql.DB }

func NewSqliteResultRepository(db *sql.DB) *SqliteResultRepository {
	return &SqliteResultRepository{DB: db}
}

// Store the final parcel and vehicle state of a run in one transaction.
func (s *SqliteResultRepository) SaveRun(
	ctx context.Context,
	runID string,
	parcels []domain.Parcel,
	vehicles []domain.Vehicle,
) (err error) {
	defer obs.Time(ctx, "results.sqlite.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("save run: DB is nil")
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
	if _, err := tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO runs (run_id, finished_at, total_mileage)
	VALUES (?, ?, ?);
	`, runID, time.Now().UTC().Format(time.RFC3339), total); err != nil {
		return fmt.Errorf("save run %s: insert run: %w", runID, err)
	}

	pstmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO parcel_results (
		run_id,
		parcel_id,
		vehicle_id,
		departure_seconds,
		delivery_seconds,
		street
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
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
			return fmt.Errorf("save run %s: parcel_id=%d: %w", runID, p.ID, err)
		}
	}

	vstmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO vehicle_results (run_id, vehicle_id, mileage, clock_seconds)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save run %s: prepare vehicle results: %w", runID, err)
	}
	defer vstmt.Close()

	for _, v := range vehicles {
		clock := v.Clock
		if _, err := vstmt.ExecContext(ctx, runID, v.ID, v.Mileage, toSeconds(&clock)); err != nil {
			return fmt.Errorf("save run %s: vehicle_id=%d: %w", runID, v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run %s: commit: %w", runID, err)
	}

	return nil
}

// Return the recorded parcel outcomes of a run ordered by parcel ID.
func (s *SqliteResultRepository) LoadRunParcels(ctx context.Context, runID string) ([]domain.Parcel, error) {
	if s.DB == nil {
		return nil, errors.New("load run: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT parcel_id, vehicle_id, departure_seconds, delivery_seconds, street
	FROM parcel_results
	WHERE run_id = ?
	ORDER BY parcel_id;
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: query parcel_results: %w", runID, err)
	}
	defer rows.Close()

	var out []domain.Parcel
	for rows.Next() {
		var (
			p        domain.Parcel
			dep, del sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.VehicleID, &dep, &del, &p.Destination.Street); err != nil {
			return nil, fmt.Errorf("load run %s: scan row: %w", runID, err)
		}
		p.DepartureTime = fromSeconds(dep)
		p.DeliveryTime = fromSeconds(del)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load run %s: row iteration: %w", runID, err)
	}

	return out, nil
}

// Return the fleet mileage recorded for a run.
func (s *SqliteResultRepository) RunMileage(ctx context.Context, runID string) (float64, error) {
	var total float64
	err := s.DB.QueryRowContext(ctx, `SELECT total_mileage FROM runs WHERE run_id = ?;`, runID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("run mileage %s: %w", runID, err)
	}
	return total, nil
}
