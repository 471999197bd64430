package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/platform/obs"
)

const upsertParcelSQL = `
	INSERT INTO parcels (parcel_id, street, city, state, zip, deadline, weight, notes, release_at_seconds)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (parcel_id) DO UPDATE
	SET street = EXCLUDED.street,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip = EXCLUDED.zip,
		deadline = EXCLUDED.deadline,
		weight = EXCLUDED.weight,
		notes = EXCLUDED.notes,
		release_at_seconds = EXCLUDED.release_at_seconds;
	`

// SQLParcelRepository reads the parcel manifest from Postgres.
type SQLParcelRepository struct {
	DB *sql.DB
}

func NewSQLParcelRepository(db *sql.DB) *SQLParcelRepository {
	return &SQLParcelRepository{DB: db}
}

func (s *SQLParcelRepository) ListParcels(ctx context.Context) (_ []*domain.Parcel, err error) {
	defer obs.Time(ctx, "parcels.sql.ListParcels")(&err)

	if s.DB == nil {
		return nil, errors.New("sql parcel repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listParcelsQuery)
	if err != nil {
		return nil, fmt.Errorf("list parcels: query parcels table: %w", err)
	}
	defer rows.Close()

	var parcels []*domain.Parcel
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

// Upsert the given parcels into the manifest table.
func (s *SQLParcelRepository) SeedParcels(ctx context.Context, parcels []*domain.Parcel) (err error) {
	defer obs.Time(ctx, "parcels.sql.SeedParcels")(&err)

	if s.DB == nil {
		return errors.New("seed parcels: db is nil")
	}

	if len(parcels) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed parcels: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertParcelSQL)
	if err != nil {
		return fmt.Errorf("seed parcels: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range parcels {
		d := p.Destination
		if _, err := stmt.ExecContext(ctx, p.ID, d.Street, d.City, d.State, d.Zip, p.Deadline, p.Weight, p.Notes, toSeconds(p.ReleaseAt)); err != nil {
			return fmt.Errorf("seed parcels parcel_id=%d: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed parcels commit: %w", err)
	}

	return nil
}
