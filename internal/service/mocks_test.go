package service_test

import (
	"context"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/repo"
	"github.com/pkordes/thursday-pints/backend/internal/source"
)

// mockVisitSource is a hand-written test double for source.VisitSource.
type mockVisitSource struct {
	visits func(ctx context.Context) ([]domain.Visit, error)
}

func (m *mockVisitSource) Visits(ctx context.Context) ([]domain.Visit, error) {
	return m.visits(ctx)
}

var _ source.VisitSource = (*mockVisitSource)(nil)

// mockDirectorySource is a hand-written test double for source.DirectorySource.
type mockDirectorySource struct {
	directory func(ctx context.Context) ([]domain.BreweryLocation, error)
}

func (m *mockDirectorySource) Directory(ctx context.Context) ([]domain.BreweryLocation, error) {
	return m.directory(ctx)
}

var _ source.DirectorySource = (*mockDirectorySource)(nil)

// mockVisitLog is a hand-written test double for repo.VisitLog.
// Set only the function fields your test needs.
type mockVisitLog struct {
	visits       func(ctx context.Context) ([]domain.Visit, error)
	upsertByDate func(ctx context.Context, v domain.Visit) (domain.Visit, bool, error)
}

func (m *mockVisitLog) Visits(ctx context.Context) ([]domain.Visit, error) {
	return m.visits(ctx)
}
func (m *mockVisitLog) UpsertByDate(ctx context.Context, v domain.Visit) (domain.Visit, bool, error) {
	return m.upsertByDate(ctx, v)
}

var _ repo.VisitLog = (*mockVisitLog)(nil)

// ---- helpers ---------------------------------------------------------------

func f(v float64) *float64 { return &v }

func staticVisits(visits ...domain.Visit) *mockVisitSource {
	return &mockVisitSource{visits: func(context.Context) ([]domain.Visit, error) { return visits, nil }}
}

func staticDirectory(entries ...domain.BreweryLocation) *mockDirectorySource {
	return &mockDirectorySource{directory: func(context.Context) ([]domain.BreweryLocation, error) { return entries, nil }}
}

func failingDirectory(err error) *mockDirectorySource {
	return &mockDirectorySource{directory: func(context.Context) ([]domain.BreweryLocation, error) { return nil, err }}
}

func visitsFixture() []domain.Visit {
	return []domain.Visit{
		{Date: "2024-01-18", BreweryName: "A", NextBrewery: "c"},
		{Date: "2024-01-11", BreweryName: "B", IsClosed: true},
		{Date: "2024-01-04", BreweryName: "A"},
	}
}

func directoryFixture() []domain.BreweryLocation {
	return []domain.BreweryLocation{
		{Name: "C", Address: "3 Hop St", Latitude: f(37.80), Longitude: f(-122.27), Status: domain.StatusOpen},
		{Name: "A", Address: "1 Malt Ave", Latitude: f(37.70), Longitude: f(-122.47), Status: domain.StatusOpen},
	}
}
