package handler

import "net/http"

// GetMap handles GET /map: the initial viewport plus one marker per
// brewery that has coordinates.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	vp, err := s.dashboard.Viewport(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vp)
}
