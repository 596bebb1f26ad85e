package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

// handleDashboard serves the owner analytics report. When a collection is
// unreadable the report is withheld entirely rather than served half-built.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.BuildReport(r.Context())
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, rep)
}
