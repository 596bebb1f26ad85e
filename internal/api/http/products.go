package httpapi

import (
	"net/http"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sipstop/backend/internal/entity"
)

func urlID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.rep.Products().GetAllProducts(r.Context())
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	p, err := s.rep.Products().GetProductById(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, p)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var p entity.Product
	if err := render.DecodeJSON(r.Body, &p); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if _, err := govalidator.ValidateStruct(p); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	id, err := s.rep.Products().AddProduct(r.Context(), &p)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	p.Id = id

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	var p entity.Product
	if err := render.DecodeJSON(r.Body, &p); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if _, err := govalidator.ValidateStruct(p); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	updated, err := s.rep.Products().UpdateProduct(r.Context(), id, &p)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.JSON(w, r, updated)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().DeleteProductById(r.Context(), id); err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
