package handler

import (
	"net/http"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// SummaryResponse is the body of GET /summary.
type SummaryResponse struct {
	domain.Summary
	Next    *domain.NextOuting `json:"next"`
	Skipped int                `json:"skipped"`
}

// GetSummary handles GET /summary: headline totals and the next outing.
// Next is null when the newest visit names no next brewery.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard.Load(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Summary: d.Summary, Next: d.Next, Skipped: d.Skipped})
}
