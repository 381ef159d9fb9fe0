// Package service contains the business logic for the Thursday Pints API.
// Services gather data from sources and stores, run the tally pipeline, and
// validate inputs. No SQL or HTTP lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/source"
	"github.com/pkordes/thursday-pints/backend/internal/tally"
)

// BrewerySort selects the order of the brewery list.
type BrewerySort string

const (
	// SortDirectory keeps the merged order: directory order, then breweries
	// only known from visits.
	SortDirectory  BrewerySort = ""
	SortLastVisit  BrewerySort = "last_visit"
	SortPopularity BrewerySort = "popularity"
)

// BreweryQuery filters and orders the brewery list.
type BreweryQuery struct {
	Sort         BrewerySort
	MappableOnly bool
}

// DashboardService derives every read-only view from a fresh load of the
// visit log and the brewery directory. Nothing is cached between calls.
type DashboardService struct {
	visits    source.VisitSource
	directory source.DirectorySource
	logger    *slog.Logger
}

// NewDashboardService constructs a DashboardService. directory may be nil, in
// which case the merge step passes visit stats through unchanged.
func NewDashboardService(visits source.VisitSource, directory source.DirectorySource, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{visits: visits, directory: directory, logger: logger}
}

// Load fetches both inputs and runs the full pipeline.
// An unavailable input degrades to an empty one; only cancellation of ctx is
// reported as an error.
func (s *DashboardService) Load(ctx context.Context) (domain.Dashboard, error) {
	visits, directory := s.gather(ctx)
	if err := ctx.Err(); err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.DashboardService.Load: %w", err)
	}

	skipped := 0
	for _, v := range visits {
		if !tally.WellFormed(v) {
			skipped++
		}
	}
	if skipped > 0 {
		s.logger.WarnContext(ctx, "skipped malformed visit records", "count", skipped)
	}

	stats := tally.Aggregate(visits)
	merged := tally.Merge(stats, directory)

	d := domain.Dashboard{
		Visits:    visits,
		Stats:     merged,
		Breweries: tally.Locate(merged, directory),
		Summary:   tally.Summarize(visits, stats),
		Skipped:   skipped,
	}
	if next, ok := tally.NextOuting(visits, merged); ok {
		d.Next = &next
	}
	return d, nil
}

// gather loads both inputs concurrently and waits for both.
func (s *DashboardService) gather(ctx context.Context) ([]domain.Visit, []domain.BreweryLocation) {
	var (
		wg        sync.WaitGroup
		visits    []domain.Visit
		directory []domain.BreweryLocation
		visitErr  error
		dirErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		visits, visitErr = s.visits.Visits(ctx)
	}()

	if s.directory != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			directory, dirErr = s.directory.Directory(ctx)
		}()
	}

	wg.Wait()

	if visitErr != nil {
		s.logger.WarnContext(ctx, "visit log unavailable, showing empty state", "error", visitErr)
		visits = nil
	}
	if dirErr != nil {
		s.logger.WarnContext(ctx, "brewery directory unavailable, using visit stats only", "error", dirErr)
		directory = nil
	}
	if visits == nil {
		visits = []domain.Visit{}
	}
	return visits, directory
}

// Breweries returns the merged brewery list filtered and ordered by q.
func (s *DashboardService) Breweries(ctx context.Context, q BreweryQuery) ([]domain.Brewery, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DashboardService.Breweries: %w", err)
	}

	list := d.Breweries
	if q.MappableOnly {
		list = mappable(list)
	}

	switch q.Sort {
	case SortDirectory:
	case SortLastVisit:
		list = tally.ByLastVisit(list)
	case SortPopularity:
		list = tally.ByPopularity(list)
	default:
		return nil, fmt.Errorf("service.DashboardService.Breweries: %w: unknown sort %q", domain.ErrValidation, q.Sort)
	}
	return list, nil
}

// Top returns the n most visited breweries.
func (s *DashboardService) Top(ctx context.Context, n int) ([]domain.Brewery, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DashboardService.Top: %w", err)
	}
	return tally.Top(d.Breweries, n), nil
}

// Bottom returns the n least visited breweries that are still open.
func (s *DashboardService) Bottom(ctx context.Context, n int) ([]domain.Brewery, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DashboardService.Bottom: %w", err)
	}
	return tally.Bottom(d.Breweries, n), nil
}

// TourLog returns one page of the chronological tour log and the total
// number of entries.
func (s *DashboardService) TourLog(ctx context.Context, p domain.PaginationParams) ([]domain.TourEntry, int, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.DashboardService.TourLog: %w", err)
	}
	entries := tally.TourLog(d.Visits)
	start, end := p.Window(len(entries))
	return entries[start:end], len(entries), nil
}

// Viewport returns the initial map position and markers.
func (s *DashboardService) Viewport(ctx context.Context) (domain.Viewport, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return domain.Viewport{}, fmt.Errorf("service.DashboardService.Viewport: %w", err)
	}
	return tally.ComputeViewport(d.Breweries), nil
}

func mappable(list []domain.Brewery) []domain.Brewery {
	out := make([]domain.Brewery, 0, len(list))
	for _, b := range list {
		if b.Mappable() {
			out = append(out, b)
		}
	}
	return out
}
