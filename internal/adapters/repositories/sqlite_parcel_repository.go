package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-delivery-sim/internal/domain"
)

// SQLite-backed implementation of the ParcelRepository port.
type SqliteParcelRepository struct{ DB *sql.DB }

func NewSqliteParcelRepository(db *sql.DB) *SqliteParcelRepository {
	return &SqliteParcelRepository{DB: db}
}

// Return all parcels stored in the manifest table.
func (s *SqliteParcelRepository) ListParcels(ctx context.Context) ([]*domain.Parcel, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite parcel repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listParcelsQuery)
	if err != nil {
		return nil, fmt.Errorf("list parcels: query parcels table: %w", err)
	}
	defer rows.Close()

	parcels := make([]*domain.Parcel, 0, 64)
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("list parcels: scan row: %w", err)
		}
		parcels = append(parcels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parcels: row iteration: %w", err)
	}

	return parcels, nil
}

// Replace the stored manifest entries for the given parcels.
func (s *SqliteParcelRepository) SeedParcels(ctx context.Context, parcels []*domain.Parcel) error {
	if s.DB == nil {
		return errors.New("seed parcels: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed parcels: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO parcels (
		parcel_id,
		street,
		city,
		state,
		zip,
		deadline,
		weight,
		notes,
		release_at_seconds
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed parcels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range parcels {
		d := p.Destination
		if _, err := stmt.ExecContext(ctx, p.ID, d.Street, d.City, d.State, d.Zip, p.Deadline, p.Weight, p.Notes, toSeconds(p.ReleaseAt)); err != nil {
			return fmt.Errorf("seed parcels: insert parcel_id=%d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed parcels: commit tx: %w", err)
	}

	return nil
}
