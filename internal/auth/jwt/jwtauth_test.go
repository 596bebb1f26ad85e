package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sipstop/backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)

	token, err := NewToken(ja, time.Minute, 42, entity.Owner)
	require.NoError(t, err)

	claims, err := VerifyToken(ja, token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, entity.Owner, claims.Role)
}

func TestExpiredToken(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)

	token, err := NewToken(ja, -time.Minute, 1, entity.Customer)
	require.NoError(t, err)

	_, err = VerifyToken(ja, token)
	assert.Error(t, err)
}

func TestWrongSecret(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	other := jwtauth.New("HS256", []byte("other-secret"), nil)

	token, err := NewToken(ja, time.Minute, 1, entity.Customer)
	require.NoError(t, err)

	_, err = VerifyToken(other, token)
	assert.Error(t, err)
}

func TestUnknownRoleFallsBackToCustomer(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)

	_, ts, err := ja.Encode(map[string]interface{}{
		"exp":  time.Now().Add(time.Minute).Unix(),
		"sub":  "7",
		"role": "superadmin",
	})
	require.NoError(t, err)

	claims, err := VerifyToken(ja, ts)
	require.NoError(t, err)
	assert.Equal(t, entity.Customer, claims.Role)
}
