package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/sipstop/backend/internal/auth"
	"github.com/sipstop/backend/internal/dto"
	"github.com/sipstop/backend/internal/entity"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		render.Render(w, r, ErrInternalServerError(fmt.Errorf("missing claims")))
		return
	}

	u, err := s.rep.Users().GetUserById(r.Context(), claims.UserID)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, dto.UserFromEntity(u))
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		render.Render(w, r, ErrInternalServerError(fmt.Errorf("missing claims")))
		return
	}

	var upd entity.UserUpdate
	if err := render.DecodeJSON(r.Body, &upd); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	u, err := s.rep.Users().UpdateUser(r.Context(), claims.UserID, &upd)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, dto.UserFromEntity(u))
}

// handleUpdateUser is the path-parameter variant of handleUpdateMe. Users can
// only touch their own record, and role and id stay immutable either way.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		render.Render(w, r, ErrInternalServerError(fmt.Errorf("missing claims")))
		return
	}

	id, err := urlID(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if id != claims.UserID {
		render.Render(w, r, ErrNotFound)
		return
	}

	var upd entity.UserUpdate
	if err := render.DecodeJSON(r.Body, &upd); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	u, err := s.rep.Users().UpdateUser(r.Context(), claims.UserID, &upd)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, dto.UserFromEntity(u))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.rep.Users().GetAllUsers(r.Context())
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, dto.UsersFromEntities(users))
}
