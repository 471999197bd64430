package repositories

import (
	"context"
	"database/sql"
	"errors"
)

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS parcels (
		parcel_id INTEGER PRIMARY KEY,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip TEXT NOT NULL,
		deadline TEXT NOT NULL,
		weight INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		release_at_seconds BIGINT
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		finished_at TIMESTAMPTZ NOT NULL,
		total_mileage DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS parcel_results (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		parcel_id INTEGER NOT NULL,
		vehicle_id INTEGER NOT NULL,
		departure_seconds BIGINT,
		delivery_seconds BIGINT,
		street TEXT NOT NULL,
		PRIMARY KEY (run_id, parcel_id)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS vehicle_results (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		vehicle_id INTEGER NOT NULL,
		mileage DOUBLE PRECISION NOT NULL,
		clock_seconds BIGINT NOT NULL,
		PRIMARY KEY (run_id, vehicle_id)
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_parcel_results_parcel
	ON parcel_results(parcel_id, run_id);
	`,
}

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}
	return execAll(ctx, db, "init postgres schema", postgresSchema)
}
