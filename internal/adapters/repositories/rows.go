package repositories

import (
	"database/sql"
	"parcel-delivery-sim/internal/domain"
	"time"
)

// Timestamps are stored as whole seconds since the start of the day.

func toSeconds(t *domain.TimeOfDay) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(t.Duration().Round(time.Second) / time.Second), Valid: true}
}

func fromSeconds(n sql.NullInt64) *domain.TimeOfDay {
	if !n.Valid {
		return nil
	}
	return domain.TimeOfDay(time.Duration(n.Int64) * time.Second).Ptr()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParcel(s scanner) (*domain.Parcel, error) {
	var (
		p       domain.Parcel
		release sql.NullInt64
	)
	err := s.Scan(
		&p.ID,
		&p.Destination.Street,
		&p.Destination.City,
		&p.Destination.State,
		&p.Destination.Zip,
		&p.Deadline,
		&p.Weight,
		&p.Notes,
		&release,
	)
	if err != nil {
		return nil, err
	}
	p.ReleaseAt = fromSeconds(release)
	return &p, nil
}

const listParcelsQuery = `
	SELECT
		parcel_id,
		street,
		city,
		state,
		zip,
		deadline,
		weight,
		notes,
		release_at_seconds
	FROM parcels
	ORDER BY parcel_id;
	`
