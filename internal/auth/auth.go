package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sipstop/backend/internal/auth/jwt"
	"github.com/sipstop/backend/internal/auth/pwhash"
	"github.com/sipstop/backend/internal/dependency"
	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
)

// Config contains the configuration for the auth service.
type Config struct {
	JWTSecret                string `mapstructure:"jwtSecret"`
	PasswordHasherSaltSize   int    `mapstructure:"passwordHasherSaltSize"`
	PasswordHasherIterations int    `mapstructure:"passwordHasherIterations"`
	JWTTTL                   string `mapstructure:"jwtttl"`
}

// Service issues session tokens and gates requests by role.
type Service struct {
	usersRepository dependency.Users
	mailer          dependency.Mailer
	pwhash          *pwhash.PasswordHasher
	JwtAuth         *jwtauth.JWTAuth
	jwtTTL          time.Duration
}

// New creates a new auth service. The mailer may be nil; signup then skips
// the welcome email.
func New(c *Config, ur dependency.Users, mailer dependency.Mailer) (*Service, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("cannot parse jwt ttl: %w", err)
	}

	return &Service{
		usersRepository: ur,
		mailer:          mailer,
		pwhash:          ph,
		JwtAuth:         jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:          ttl,
	}, nil
}

// Signup registers a new customer account and logs it in. The role is
// always customer: owners are provisioned out of band. The welcome email
// is best effort and never fails the signup.
func (s *Service) Signup(ctx context.Context, name, email, password string) (string, *entity.User, error) {
	hash, err := s.pwhash.HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	u := &entity.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         entity.Customer,
	}
	id, err := s.usersRepository.AddUser(ctx, u)
	if err != nil {
		return "", nil, err
	}
	u.Id = id

	token, err := jwt.NewToken(s.JwtAuth, s.jwtTTL, u.Id, u.Role)
	if err != nil {
		return "", nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, u.Email, u.Name); err != nil {
			slog.Default().ErrorContext(ctx, "can't send welcome mail",
				slog.String("err", err.Error()),
				slog.Int("userId", u.Id),
			)
		}
	}

	return token, u, nil
}

// Login returns a session token for valid credentials. Unknown emails and
// wrong passwords both come back as ErrNotAuthenticated.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.usersRepository.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, gerr.ErrNotAuthenticated
	}

	if err := s.pwhash.Validate(password, u.PasswordHash); err != nil {
		return "", nil, gerr.ErrNotAuthenticated
	}

	token, err := jwt.NewToken(s.JwtAuth, s.jwtTTL, u.Id, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

type ctxKey int

const claimsKey ctxKey = iota

// WithAuth middleware rejects requests without a valid bearer token and
// stores the decoded claims on the request context.
func (s *Service) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims, err := jwt.VerifyToken(s.JwtAuth, token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireOwner middleware allows only owner sessions through. It must run
// after WithAuth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Role != entity.Owner {
			http.Error(w, "owner access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the claims stored by WithAuth.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	return claims, ok
}
