package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/sipstop/backend/internal/auth"
	"github.com/sipstop/backend/internal/dependency"
	"github.com/sipstop/backend/internal/ratelimit"
	"github.com/sipstop/backend/internal/report"
)

const (
	authAttemptsPerIP    = 30
	authAttemptsPerEmail = 10
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}

	rep         dependency.Repository
	authSvc     *auth.Service
	reports     *report.Service
	mailer      dependency.Mailer
	authLimiter *ratelimit.AuthLimiter
}

// New creates a new server
func New(config *Config, rep dependency.Repository, authSvc *auth.Service, reports *report.Service, mailer dependency.Mailer) *Server {
	return &Server{
		c:           config,
		done:        make(chan struct{}),
		rep:         rep,
		authSvc:     authSvc,
		reports:     reports,
		mailer:      mailer,
		authLimiter: ratelimit.NewAuthLimiter(authAttemptsPerIP, authAttemptsPerEmail),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Router assembles the full route tree. Exposed for handler tests.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	})

	r.Use(c.Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(httprate.Limit(
		100,
		time.Minute,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	))

	health := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
	r.Get("/", health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/products", s.handleListProducts)
		r.Get("/products/{id}", s.handleGetProduct)

		r.Group(func(r chi.Router) {
			r.Use(s.authSvc.WithAuth)

			r.Get("/users/me", s.handleGetMe)
			r.Put("/users/me", s.handleUpdateMe)
			r.Put("/users/{id}", s.handleUpdateUser)

			r.Post("/orders", s.handleCreateOrder)
			r.Get("/orders", s.handleListOrders)
			r.Get("/orders/{id}", s.handleGetOrder)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authSvc.WithAuth, auth.RequireOwner)

			r.Get("/users", s.handleListUsers)

			r.Post("/products", s.handleAddProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)

			r.Get("/analytics", s.handleDashboard)
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: s.Router(),
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("sipstop-backend new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}
