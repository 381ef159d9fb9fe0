package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// Pagination is the metadata attached to every paginated list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TourLogResponse is the body of GET /visits.
type TourLogResponse struct {
	Data       []domain.TourEntry `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// ListVisits handles GET /visits.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListVisits(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := bindQuery(r, "page", &page); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := bindQuery(r, "limit", &limit); err != nil {
		requestError(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	entries, total, err := s.dashboard.TourLog(r.Context(), params)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TourLogResponse{
		Data: entries,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// RecordVisit handles POST /visits.
// Responds 201 when a new visit was added and 200 when the visit for that
// date was updated in place.
func (s *Server) RecordVisit(w http.ResponseWriter, r *http.Request) {
	var in domain.VisitInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		requestError(w, "request body must be a visit JSON object")
		return
	}

	v, created, err := s.visits.Record(r.Context(), in)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, v)
}
