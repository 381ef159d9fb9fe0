// Package repo contains the persistence layer for the visit log and the
// brewery directory: a JSON file implementation of the visit log and Postgres
// implementations of both. No business logic lives here, only storage and
// type mapping.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// VisitLog is the writable visit log. It also satisfies source.VisitSource,
// so a store can back both the dashboard and the append/update operation.
type VisitLog interface {
	// Visits returns every stored visit, newest first.
	Visits(ctx context.Context) ([]domain.Visit, error)

	// UpsertByDate replaces the visit with the same date, or inserts v at the
	// head of the log when no visit has that date. It reports whether a new
	// record was created. IsClosed of an existing record is left untouched.
	UpsertByDate(ctx context.Context, v domain.Visit) (domain.Visit, bool, error)
}

// VisitStore is a VisitLog that can also be reloaded wholesale, which is how
// pints import copies a data.json into Postgres.
type VisitStore interface {
	VisitLog

	// ReplaceVisits discards every stored visit and writes visits exactly as
	// given, IsClosed included. Dates must be valid and distinct.
	ReplaceVisits(ctx context.Context, visits []domain.Visit) error
}

// DirectoryStore persists the brewery directory. It also satisfies
// source.DirectorySource.
type DirectoryStore interface {
	// Directory returns every entry in insertion order.
	Directory(ctx context.Context) ([]domain.BreweryLocation, error)

	// ReplaceDirectory discards the stored directory and writes entries in
	// their given order.
	ReplaceDirectory(ctx context.Context, entries []domain.BreweryLocation) error
}
