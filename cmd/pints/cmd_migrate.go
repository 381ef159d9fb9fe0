package main

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/thursday-pints/backend/migrations"
)

func migrateCmd(newLogger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations to DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			pool, _, err := openPool(ctx)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer pool.Close()

			// goose needs database/sql; share the pool's config through the pgx driver.
			db := stdlib.OpenDBFromPool(pool)
			defer func() { _ = db.Close() }()

			provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
			if err != nil {
				return fmt.Errorf("migrate: creating provider: %w", err)
			}

			results, err := provider.Up(ctx)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			for _, r := range results {
				logger.Debug("migration applied", "source", r.Source.Path, "duration", r.Duration)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", len(results))
			return nil
		},
	}
}
