package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/handler"
	"github.com/pkordes/thursday-pints/backend/internal/service"
)

// ---- mock DashboardServicer ------------------------------------------------

// mockDashboard is a hand-written test double for handler.DashboardServicer.
// Set only the function fields your test needs.
type mockDashboard struct {
	load      func(ctx context.Context) (domain.Dashboard, error)
	breweries func(ctx context.Context, q service.BreweryQuery) ([]domain.Brewery, error)
	top       func(ctx context.Context, n int) ([]domain.Brewery, error)
	bottom    func(ctx context.Context, n int) ([]domain.Brewery, error)
	tourLog   func(ctx context.Context, p domain.PaginationParams) ([]domain.TourEntry, int, error)
	viewport  func(ctx context.Context) (domain.Viewport, error)
}

func (m *mockDashboard) Load(ctx context.Context) (domain.Dashboard, error) {
	return m.load(ctx)
}
func (m *mockDashboard) Breweries(ctx context.Context, q service.BreweryQuery) ([]domain.Brewery, error) {
	return m.breweries(ctx, q)
}
func (m *mockDashboard) Top(ctx context.Context, n int) ([]domain.Brewery, error) {
	return m.top(ctx, n)
}
func (m *mockDashboard) Bottom(ctx context.Context, n int) ([]domain.Brewery, error) {
	return m.bottom(ctx, n)
}
func (m *mockDashboard) TourLog(ctx context.Context, p domain.PaginationParams) ([]domain.TourEntry, int, error) {
	return m.tourLog(ctx, p)
}
func (m *mockDashboard) Viewport(ctx context.Context) (domain.Viewport, error) {
	return m.viewport(ctx)
}

var _ handler.DashboardServicer = (*mockDashboard)(nil)

// ---- mock VisitServicer ----------------------------------------------------

type mockVisitServicer struct {
	record func(ctx context.Context, in domain.VisitInput) (domain.Visit, bool, error)
}

func (m *mockVisitServicer) Record(ctx context.Context, in domain.VisitInput) (domain.Visit, bool, error) {
	return m.record(ctx, in)
}

var _ handler.VisitServicer = (*mockVisitServicer)(nil)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func f(v float64) *float64 { return &v }

// serve routes one request through a Server wired with the given mocks.
// Nil arguments leave the corresponding routes unmounted.
func serve(t *testing.T, dash handler.DashboardServicer, visits handler.VisitServicer, export handler.ExportServicer, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.NewServer(dash, visits, export, nil).Routes().ServeHTTP(rec, req)
	return rec
}
