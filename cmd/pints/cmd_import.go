package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/thursday-pints/backend/internal/calendar"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/repo"
	"github.com/pkordes/thursday-pints/backend/internal/source"
	"github.com/pkordes/thursday-pints/backend/internal/tally"
)

func importCmd(newLogger func() *slog.Logger) *cobra.Command {
	var (
		visits    string
		breweries string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the JSON visit log and brewery directory into Postgres",
		Long: `Load the JSON visit log and brewery directory into DATABASE_URL.

The visit log replaces whatever is stored, closed flags included. Records
without a brewery name or a valid YYYY-MM-DD date are skipped, and so is any
later record repeating a date already seen. The directory replaces whatever
is stored. Everything happens in one transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			pool, cfg, err := openPool(ctx)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			defer pool.Close()

			if visits == "" {
				visits = cfg.VisitsSource
			}
			if breweries == "" {
				breweries = cfg.BreweriesSource
			}
			if visits == "" {
				return fmt.Errorf("import: no visit log given (--visits or VISITS_SOURCE)")
			}

			client := &http.Client{Timeout: 30 * time.Second}
			visitLog, err := source.NewVisitJSON(visits, client).Visits(ctx)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			tx, err := pool.Begin(ctx)
			if err != nil {
				return fmt.Errorf("import: begin: %w", err)
			}
			defer func() { _ = tx.Rollback(ctx) }()

			kept, malformed, duplicates := importable(visitLog)
			if malformed > 0 {
				logger.Warn("skipped malformed visit records", "count", malformed)
			}
			if duplicates > 0 {
				logger.Warn("skipped visits repeating an earlier date", "count", duplicates)
			}
			if err := repo.NewVisitRepo(tx).ReplaceVisits(ctx, kept); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			imported, skipped := len(kept), malformed+duplicates

			dirCount := 0
			if breweries != "" {
				entries, err := source.NewDirectoryJSON(breweries, client).Directory(ctx)
				switch {
				case errors.Is(err, source.ErrUnavailable):
					logger.Warn("brewery directory unavailable, keeping stored directory", "error", err)
				case err != nil:
					return fmt.Errorf("import: %w", err)
				default:
					if err := repo.NewBreweryRepo(tx).ReplaceDirectory(ctx, entries); err != nil {
						return fmt.Errorf("import: %w", err)
					}
					dirCount = len(entries)
				}
			}

			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("import: commit: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d visit(s), skipped %d, %d directory entries\n", imported, skipped, dirCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&visits, "visits", "", "visit log URL or path (default VISITS_SOURCE)")
	cmd.Flags().StringVar(&breweries, "breweries", "", "brewery directory URL or path (default BREWERIES_SOURCE)")

	return cmd
}

// importable keeps the visits Postgres can store: well formed, a valid date,
// and the first record for each date. The log is newest first, so the first
// record is the one the file log would update.
func importable(visits []domain.Visit) (kept []domain.Visit, malformed, duplicates int) {
	kept = make([]domain.Visit, 0, len(visits))
	seen := make(map[string]bool, len(visits))
	for _, v := range visits {
		if !tally.WellFormed(v) || !calendar.Valid(v.Date) {
			malformed++
			continue
		}
		if seen[v.Date] {
			duplicates++
			continue
		}
		seen[v.Date] = true
		kept = append(kept, v)
	}
	return kept, malformed, duplicates
}
