package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/thursday-pints/backend/internal/calendar"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// pgVisitRepo is the Postgres implementation of VisitStore.
type pgVisitRepo struct {
	db db
}

// NewVisitRepo constructs a VisitStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVisitRepo(db db) VisitStore {
	return &pgVisitRepo{db: db}
}

// Visits returns all visits ordered by visit_date descending.
func (r *pgVisitRepo) Visits(ctx context.Context) ([]domain.Visit, error) {
	const q = `
		SELECT visit_date, brewery_name, is_closed, notes, next_brewery
		FROM visits
		ORDER BY visit_date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VisitRepo.Visits: %w", err)
	}
	defer rows.Close()

	visits := []domain.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VisitRepo.Visits: scan: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VisitRepo.Visits: rows: %w", err)
	}
	return visits, nil
}

// UpsertByDate inserts a visit or updates the row holding the same date.
// xmax is zero only for a freshly inserted tuple.
func (r *pgVisitRepo) UpsertByDate(ctx context.Context, v domain.Visit) (domain.Visit, bool, error) {
	day, err := calendar.Parse(v.Date)
	if err != nil {
		return domain.Visit{}, false, fmt.Errorf("repo.VisitRepo.UpsertByDate: %w: %w", domain.ErrValidation, err)
	}

	const q = `
		INSERT INTO visits (id, visit_date, brewery_name, is_closed, notes, next_brewery)
		VALUES (@id, @visit_date, @brewery_name, @is_closed, @notes, @next_brewery)
		ON CONFLICT (visit_date) DO UPDATE
		SET brewery_name = EXCLUDED.brewery_name,
		    notes        = EXCLUDED.notes,
		    next_brewery = EXCLUDED.next_brewery,
		    updated_at   = now()
		RETURNING visit_date, brewery_name, is_closed, notes, next_brewery, (xmax = 0) AS inserted`

	args := pgx.NamedArgs{
		"id":           uuid.New(),
		"visit_date":   day,
		"brewery_name": v.BreweryName,
		"is_closed":    v.IsClosed,
		"notes":        v.Notes,
		"next_brewery": v.NextBrewery,
	}

	var (
		date     pgtype.Date
		stored   domain.Visit
		inserted bool
	)
	err = r.db.QueryRow(ctx, q, args).Scan(
		&date, &stored.BreweryName, &stored.IsClosed, &stored.Notes, &stored.NextBrewery, &inserted,
	)
	if err != nil {
		return domain.Visit{}, false, fmt.Errorf("repo.VisitRepo.UpsertByDate: %w", err)
	}
	stored.Date = date.Time.Format(calendar.Layout)
	return stored, inserted, nil
}

// ReplaceVisits deletes every stored visit and inserts visits as given.
// Run it inside a transaction so readers never see the log half loaded.
func (r *pgVisitRepo) ReplaceVisits(ctx context.Context, visits []domain.Visit) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("repo.VisitRepo.ReplaceVisits: clear: %w", err)
	}

	const q = `
		INSERT INTO visits (id, visit_date, brewery_name, is_closed, notes, next_brewery)
		VALUES (@id, @visit_date, @brewery_name, @is_closed, @notes, @next_brewery)`

	for _, v := range visits {
		day, err := calendar.Parse(v.Date)
		if err != nil {
			return fmt.Errorf("repo.VisitRepo.ReplaceVisits: %w: %w", domain.ErrValidation, err)
		}
		args := pgx.NamedArgs{
			"id":           uuid.New(),
			"visit_date":   day,
			"brewery_name": v.BreweryName,
			"is_closed":    v.IsClosed,
			"notes":        v.Notes,
			"next_brewery": v.NextBrewery,
		}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.VisitRepo.ReplaceVisits: insert %s: %w", v.Date, err)
		}
	}
	return nil
}

// scanVisit maps a single database row into a domain.Visit.
func scanVisit(s scanner) (domain.Visit, error) {
	var (
		v    domain.Visit
		date pgtype.Date
	)
	err := s.Scan(&date, &v.BreweryName, &v.IsClosed, &v.Notes, &v.NextBrewery)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Visit{}, domain.ErrNotFound
		}
		return domain.Visit{}, err
	}
	v.Date = date.Time.Format(calendar.Layout)
	return v, nil
}
