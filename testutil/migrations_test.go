package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/thursday-pints/backend/testutil"
)

var tables = []string{"visits", "breweries"}

// Runs down to zero first: the repo package may already have migrated the
// shared database.
func TestMigrations_UpAndDown(t *testing.T) {
	db := testutil.NewSQLDB(t)
	p, err := testutil.NewMigrator(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = p.DownTo(ctx, 0)
	require.NoError(t, err)

	applied, err := p.Up(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, len(tables))
	for _, table := range tables {
		assert.True(t, tableExists(t, db, table), "%s should exist after up", table)
	}

	_, err = p.DownTo(ctx, 0)
	require.NoError(t, err)
	for _, table := range tables {
		assert.False(t, tableExists(t, db, table), "%s should be gone after down", table)
	}

	// Leave the schema in place for whoever runs next.
	_, err = p.Up(ctx)
	require.NoError(t, err)
}

func TestMigrations_VisitDateIsUnique(t *testing.T) {
	db := testutil.NewSQLDB(t)
	p, err := testutil.NewMigrator(db)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = p.Up(ctx)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	const insert = `INSERT INTO visits (id, visit_date, brewery_name) VALUES (gen_random_uuid(), '2024-01-04', $1)`
	_, err = tx.ExecContext(ctx, insert, "Harbor Hops")
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, insert, "Anchor Point")
	assert.Error(t, err, "a second visit on the same date must be rejected")
}

func TestMigrations_BlankBreweryNameRejected(t *testing.T) {
	db := testutil.NewSQLDB(t)
	p, err := testutil.NewMigrator(db)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = p.Up(ctx)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO visits (id, visit_date, brewery_name) VALUES (gen_random_uuid(), '1999-12-30', '   ')`)
	assert.Error(t, err)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}
