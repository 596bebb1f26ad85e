package httpapi

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"github.com/sipstop/backend/internal/auth"
	"github.com/sipstop/backend/internal/dto"
	"github.com/sipstop/backend/internal/entity"
)

type orderItemRequest struct {
	ProductId int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type createOrderRequest struct {
	Items        []orderItemRequest   `json:"items"`
	ShippingInfo *entity.ShippingInfo `json:"shippingInfo"`
}

// handleCreateOrder embeds a snapshot of every ordered product and computes
// the total server side: client-supplied prices are never trusted.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		render.Render(w, r, ErrInternalServerError(fmt.Errorf("missing claims")))
		return
	}

	var req createOrderRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if len(req.Items) == 0 {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("order has no items")))
		return
	}

	total := decimal.Zero
	items := make([]entity.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid quantity for product %d", it.ProductId)))
			return
		}
		p, err := s.rep.Products().GetProductById(r.Context(), it.ProductId)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("unknown product %d", it.ProductId)))
			return
		}
		items = append(items, entity.LineItem{Product: *p, Quantity: it.Quantity})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	order := &entity.Order{
		UserId:       claims.UserID,
		Status:       entity.Pending,
		Total:        total,
		Items:        items,
		ShippingInfo: req.ShippingInfo,
	}
	order, err := s.rep.Orders().AddOrder(r.Context(), order)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}

	s.sendOrderConfirmation(r, claims.UserID, order)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, order)
}

// sendOrderConfirmation is best effort: the order already exists, a mail
// failure must not fail the request.
func (s *Server) sendOrderConfirmation(r *http.Request, userID int, order *entity.Order) {
	if s.mailer == nil {
		return
	}
	u, err := s.rep.Users().GetUserById(r.Context(), userID)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't load user for order confirmation",
			slog.String("err", err.Error()),
			slog.Int("userId", userID),
		)
		return
	}
	if err := s.mailer.SendOrderConfirmation(r.Context(), u.Email, u.Name, dto.OrderConfirmationFromOrder(order)); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't send order confirmation",
			slog.String("err", err.Error()),
			slog.Int("orderId", order.Id),
		)
	}
}

// handleListOrders returns the caller's orders; owners see every order.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		render.Render(w, r, ErrInternalServerError(fmt.Errorf("missing claims")))
		return
	}

	orders, err := s.rep.Orders().GetAllOrders(r.Context())
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}

	if claims.Role == entity.Owner {
		render.JSON(w, r, orders)
		return
	}

	own := []entity.Order{}
	for _, o := range orders {
		if o.UserId == claims.UserID {
			own = append(own, o)
		}
	}
	render.JSON(w, r, own)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
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

	order, err := s.rep.Orders().GetOrderById(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}

	// customers cannot probe other customers' orders
	if claims.Role != entity.Owner && order.UserId != claims.UserID {
		render.Render(w, r, ErrNotFound)
		return
	}
	render.JSON(w, r, order)
}
