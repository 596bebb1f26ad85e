package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sipstop/backend/internal/dto"
	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
	"github.com/sipstop/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type welcomeRecorder struct {
	sent []string
}

func (m *welcomeRecorder) SendWelcome(_ context.Context, to, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}
func (m *welcomeRecorder) SendOrderConfirmation(context.Context, string, string, *dto.OrderConfirmation) error {
	return nil
}
func (m *welcomeRecorder) Start(context.Context) error { return nil }
func (m *welcomeRecorder) Stop() error                 { return nil }

func newTestService(t *testing.T) (*Service, *store.BuntDB, *welcomeRecorder) {
	t.Helper()
	db, err := store.New(store.Config{
		UsersPath:    ":memory:",
		ProductsPath: ":memory:",
		OrdersPath:   ":memory:",
		MailPath:     ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	mailer := &welcomeRecorder{}
	svc, err := New(&Config{
		JWTSecret:                "test-secret",
		PasswordHasherSaltSize:   16,
		PasswordHasherIterations: 1000,
		JWTTTL:                   "10m",
	}, db.Users(), mailer)
	require.NoError(t, err)
	return svc, db, mailer
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, db, mailer := newTestService(t)

	token, u, err := svc.Signup(ctx, "Alice", "Alice@Example.COM", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, u.Id)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.Customer, u.Role)
	assert.Equal(t, []string{"alice@example.com"}, mailer.sent)

	stored, err := db.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "password must never be stored in clear")
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Mallory", "ALICE@example.com", "other")
	assert.True(t, errors.Is(err, gerr.ErrEmailTaken))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, "Alice@Example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", u.Email)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.True(t, errors.Is(err, gerr.ErrNotAuthenticated))

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.True(t, errors.Is(err, gerr.ErrNotAuthenticated))
}

func TestWithAuthMiddleware(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	token, u, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	handler := svc.WithAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, u.Id, claims.UserID)
		assert.Equal(t, entity.Customer, claims.Role)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// missing and garbage tokens are both rejected
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireOwner(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newTestService(t)

	customerToken, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	// owners are provisioned directly in the store, never via signup
	hash, err := svc.pwhash.HashPassword("hunter2")
	require.NoError(t, err)
	_, err = db.Users().AddUser(ctx, &entity.User{
		Name: "Boss", Email: "boss@example.com", PasswordHash: hash, Role: entity.Owner,
	})
	require.NoError(t, err)
	ownerToken, _, err := svc.Login(ctx, "boss@example.com", "hunter2")
	require.NoError(t, err)

	handler := svc.WithAuth(RequireOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
