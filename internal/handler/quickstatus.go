package handler

import (
	"net/http"

	"github.com/andiyar/wheresben/internal/domain"
)

// ListQuickStatuses handles GET /api/v1/quick-statuses.
// The catalogue is fixed at compile time; the posting surface renders it
// as a one-tap grid.
func (s *Server) ListQuickStatuses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.QuickStatuses)
}
