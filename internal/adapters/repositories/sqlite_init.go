package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var sqliteSchema = []string{
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
		release_at_seconds INTEGER
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		finished_at TEXT NOT NULL,
		total_mileage REAL NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS parcel_results (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		parcel_id INTEGER NOT NULL,
		vehicle_id INTEGER NOT NULL,
		departure_seconds INTEGER,
		delivery_seconds INTEGER,
		street TEXT NOT NULL,
		PRIMARY KEY (run_id, parcel_id)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS vehicle_results (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		vehicle_id INTEGER NOT NULL,
		mileage REAL NOT NULL,
		clock_seconds INTEGER NOT NULL,
		PRIMARY KEY (run_id, vehicle_id)
	);
	`,
}

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}
	return execAll(ctx, db, "init schema", sqliteSchema)
}

func execAll(ctx context.Context, db *sql.DB, op string, statements []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: exec statement #%d: %w", op, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}
