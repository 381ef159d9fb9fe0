// Package handler implements the HTTP handlers for the Thursday Pints API.
// All handlers are methods on Server; Routes mounts them on a chi router.
// Methods are split into resource-specific files (brewery.go, visit.go, etc.)
// but share the same Server struct and its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/thursday-pints/backend/api"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/service"
)

// DashboardServicer defines the read-only views the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching sources or the tally pipeline.
type DashboardServicer interface {
	Load(ctx context.Context) (domain.Dashboard, error)
	Breweries(ctx context.Context, q service.BreweryQuery) ([]domain.Brewery, error)
	Top(ctx context.Context, n int) ([]domain.Brewery, error)
	Bottom(ctx context.Context, n int) ([]domain.Brewery, error)
	TourLog(ctx context.Context, p domain.PaginationParams) ([]domain.TourEntry, int, error)
	Viewport(ctx context.Context) (domain.Viewport, error)
}

// VisitServicer defines the append/update operation on the visit log.
type VisitServicer interface {
	Record(ctx context.Context, in domain.VisitInput) (domain.Visit, bool, error)
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
// A nil VisitServicer disables POST /visits (405 from the router).
type Server struct {
	dashboard DashboardServicer
	visits    VisitServicer
	export    ExportServicer
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(dashboard DashboardServicer, visits VisitServicer, export ExportServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{dashboard: dashboard, visits: visits, export: export, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns a chi router with every endpoint mounted.
// Cross-cutting middleware (logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	if s.dashboard != nil {
		r.Get("/summary", s.GetSummary)
		r.Get("/breweries", s.ListBreweries)
		r.Get("/breweries/top", s.TopBreweries)
		r.Get("/breweries/bottom", s.BottomBreweries)
		r.Get("/visits", s.ListVisits)
		r.Get("/map", s.GetMap)
	}
	if s.visits != nil {
		r.Post("/visits", s.RecordVisit)
	}
	if s.export != nil {
		r.Get("/export", s.GetExport)
	}
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPI)
}
