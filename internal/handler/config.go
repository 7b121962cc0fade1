package handler

import "net/http"

// GetConfig handles GET /api/v1/config.
// Returns the folded TripConfig, defaults applied for missing keys.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.trips.Config(r.Context())
	if err != nil {
		respondError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
