package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/sipstop/backend/internal/dto"
	gerr "github.com/sipstop/backend/internal/errors"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrTooManyRequests(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusTooManyRequests,
		StatusText:     "Too many requests.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorText:      err.Error(),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// ErrDomain maps store and service sentinels onto http statuses. Anything
// unrecognized is a 500.
func ErrDomain(err error) render.Renderer {
	switch {
	case errors.Is(err, gerr.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, gerr.ErrEmailTaken):
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusConflict,
			StatusText:     "Email already registered.",
			ErrorText:      err.Error(),
		}
	case errors.Is(err, gerr.ErrEmptyOrder), errors.Is(err, gerr.ErrInvalidOrderStatus):
		return ErrInvalidRequest(err)
	case errors.Is(err, gerr.ErrNotAuthenticated):
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusUnauthorized,
			StatusText:     "Invalid credentials.",
		}
	case errors.Is(err, gerr.ErrNotAuthorized):
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusForbidden,
			StatusText:     "Forbidden.",
		}
	case errors.Is(err, gerr.ErrDataUnavailable):
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusServiceUnavailable,
			StatusText:     "Analytics temporarily unavailable.",
			ErrorText:      err.Error(),
		}
	default:
		return ErrInternalServerError(err)
	}
}

// SessionResponse is the login and signup payload.
type SessionResponse struct {
	Token string   `json:"token"`
	User  dto.User `json:"user"`
}

func (sr *SessionResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
