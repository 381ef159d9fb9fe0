package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/service"
)

// ListBreweries handles GET /breweries.
// ?sort=last_visit|popularity changes the order (default: directory order);
// ?mappable=true keeps only breweries with coordinates.
func (s *Server) ListBreweries(w http.ResponseWriter, r *http.Request) {
	var (
		sort     *string
		mappable *bool
	)
	if err := bindQuery(r, "sort", &sort); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := bindQuery(r, "mappable", &mappable); err != nil {
		requestError(w, err.Error())
		return
	}

	q := service.BreweryQuery{}
	if sort != nil {
		q.Sort = service.BrewerySort(*sort)
	}
	if mappable != nil {
		q.MappableOnly = *mappable
	}

	list, err := s.dashboard.Breweries(r.Context(), q)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// TopBreweries handles GET /breweries/top?limit=n.
func (s *Server) TopBreweries(w http.ResponseWriter, r *http.Request) {
	s.ranking(w, r, s.dashboard.Top)
}

// BottomBreweries handles GET /breweries/bottom?limit=n.
// Closed breweries never appear in this list.
func (s *Server) BottomBreweries(w http.ResponseWriter, r *http.Request) {
	s.ranking(w, r, s.dashboard.Bottom)
}

func (s *Server) ranking(w http.ResponseWriter, r *http.Request, rank func(ctx context.Context, n int) ([]domain.Brewery, error)) {
	n, err := limitParam(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	list, err := rank(r.Context(), n)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
