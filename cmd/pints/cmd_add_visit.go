package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/repo"
	"github.com/pkordes/thursday-pints/backend/internal/service"
)

func addVisitCmd() *cobra.Command {
	var (
		in      domain.VisitInput
		file    string
		mirrors []string
	)

	cmd := &cobra.Command{
		Use:   "add-visit",
		Short: "Add a visit to the JSON visit log, or update the visit on that date",
		Long: `Add a visit to the JSON visit log (newest first). When a visit already
exists for --date it is updated in place instead.

Notes equal to "No response" are dropped. Every write also rewrites each
--mirror path with an identical copy.`,
		Example: `  pints add-visit --date 2024-01-25 --brewery "Harbor Hops" --next-brewery "Fog City Ferments"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewVisitService(repo.NewFileVisitLog(file, mirrors...))

			v, created, err := svc.Record(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("add-visit: %w", err)
			}

			verb := "Added"
			if !created {
				verb = "Updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s visit: %s - %s\n", verb, v.Date, v.BreweryName)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", "", "visit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.BreweryName, "brewery", "", "brewery visited")
	cmd.Flags().StringVar(&in.NextBrewery, "next-brewery", "", "next brewery, or a free-text hint")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "optional notes")
	cmd.Flags().StringVar(&file, "file", "public/data.json", "visit log to update")
	cmd.Flags().StringSliceVar(&mirrors, "mirror", []string{"dist/data.json"}, "extra copies to rewrite")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("brewery")
	_ = cmd.MarkFlagRequired("next-brewery")

	return cmd
}
