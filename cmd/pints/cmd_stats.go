package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/thursday-pints/backend/internal/calendar"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/service"
	"github.com/pkordes/thursday-pints/backend/internal/source"
	"github.com/pkordes/thursday-pints/backend/internal/tally"
)

func statsCmd(newLogger func() *slog.Logger) *cobra.Command {
	var (
		visits    string
		breweries string
		top       int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print tour totals, the most visited breweries and the next outing",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}

			var directory source.DirectorySource
			if breweries != "" {
				directory = source.NewDirectoryJSON(breweries, client)
			}
			dash := service.NewDashboardService(source.NewVisitJSON(visits, client), directory, newLogger())

			d, err := dash.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			printStats(cmd.OutOrStdout(), d, top)
			return nil
		},
	}

	cmd.Flags().StringVar(&visits, "visits", "public/data.json", "visit log URL or path")
	cmd.Flags().StringVar(&breweries, "breweries", "", "brewery directory URL or path")
	cmd.Flags().IntVar(&top, "top", tally.DefaultRankSize, "number of breweries in the top list")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP fetch timeout")

	return cmd
}

func printStats(w io.Writer, d domain.Dashboard, top int) {
	fmt.Fprintf(w, "Breweries toured: %d\n", d.Summary.TotalBreweries)
	fmt.Fprintf(w, "Total visits:     %d\n", d.Summary.TotalVisits)
	if d.Skipped > 0 {
		fmt.Fprintf(w, "Skipped records:  %d\n", d.Skipped)
	}

	ranked := tally.Top(d.Stats, top)
	if len(ranked) > 0 {
		fmt.Fprintln(w, "\nMost visited:")
		for i, s := range ranked {
			fmt.Fprintf(w, "  %2d. %-32s %3d  %s\n", i+1, s.Name, s.VisitCount, calendar.Format(s.LastVisitDate))
		}
	}

	if d.Next != nil {
		fmt.Fprintf(w, "\nNext outing (%s): %s\n", calendar.Format(d.Next.Date), d.Next.Suggestion)
	}
}
