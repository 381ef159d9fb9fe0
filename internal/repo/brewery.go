package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// pgBreweryRepo is the Postgres implementation of DirectoryStore.
type pgBreweryRepo struct {
	db db
}

// NewBreweryRepo constructs a DirectoryStore backed by the provided db connection.
// ReplaceDirectory is not atomic on its own; pass a pgx.Tx when that matters.
func NewBreweryRepo(db db) DirectoryStore {
	return &pgBreweryRepo{db: db}
}

// Directory returns all breweries in the order they were written.
func (r *pgBreweryRepo) Directory(ctx context.Context) ([]domain.BreweryLocation, error) {
	const q = `
		SELECT name, address, latitude, longitude, status
		FROM breweries
		ORDER BY position`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BreweryRepo.Directory: %w", err)
	}
	defer rows.Close()

	entries := []domain.BreweryLocation{}
	for rows.Next() {
		e, err := scanBrewery(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BreweryRepo.Directory: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BreweryRepo.Directory: rows: %w", err)
	}
	return entries, nil
}

// ReplaceDirectory deletes every stored brewery and inserts entries with
// ascending positions.
func (r *pgBreweryRepo) ReplaceDirectory(ctx context.Context, entries []domain.BreweryLocation) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM breweries`); err != nil {
		return fmt.Errorf("repo.BreweryRepo.ReplaceDirectory: clear: %w", err)
	}

	const q = `
		INSERT INTO breweries (id, position, name, address, latitude, longitude, status)
		VALUES (@id, @position, @name, @address, @latitude, @longitude, @status)`

	for i, e := range entries {
		args := pgx.NamedArgs{
			"id":        uuid.New(),
			"position":  i,
			"name":      e.Name,
			"address":   e.Address,
			"latitude":  e.Latitude, // nil becomes NULL
			"longitude": e.Longitude,
			"status":    e.Status,
		}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.BreweryRepo.ReplaceDirectory: insert %q: %w", e.Name, err)
		}
	}
	return nil
}

// scanBrewery maps a single database row into a domain.BreweryLocation,
// handling the nullable coordinate columns.
func scanBrewery(s scanner) (domain.BreweryLocation, error) {
	var (
		e        domain.BreweryLocation
		lat, lng pgtype.Float8
	)
	if err := s.Scan(&e.Name, &e.Address, &lat, &lng, &e.Status); err != nil {
		return domain.BreweryLocation{}, err
	}
	if lat.Valid {
		v := lat.Float64
		e.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		e.Longitude = &v
	}
	return e, nil
}
