package httpapi

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/render"
	"github.com/sipstop/backend/internal/dto"
)

const minPasswordLength = 6

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.authLimiter.CheckAttempt(clientIP(r), strings.ToLower(req.Email)); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("name is required")))
		return
	}
	if !govalidator.IsEmail(req.Email) {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid email address")))
		return
	}
	if len(req.Password) < minPasswordLength {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("password must be at least %d characters", minPasswordLength)))
		return
	}

	token, u, err := s.authSvc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &SessionResponse{Token: token, User: dto.UserFromEntity(u)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	email := strings.ToLower(req.Email)
	if err := s.authLimiter.CheckAttempt(clientIP(r), email); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	token, u, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	s.authLimiter.ReportSuccess(email)

	render.Render(w, r, &SessionResponse{Token: token, User: dto.UserFromEntity(u)})
}

// clientIP strips the port from RemoteAddr; the RealIP middleware has
// already resolved forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
