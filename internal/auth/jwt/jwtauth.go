package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sipstop/backend/internal/entity"
)

// Claims is the decoded identity carried by a session token.
type Claims struct {
	UserID int
	Role   entity.UserRole
}

// NewToken creates a signed session token. The subject is the user id;
// the role rides along as a private claim so gating does not need a
// store lookup.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, userID int, role entity.UserRole) (string, error) {
	claims := map[string]interface{}{
		"exp":  time.Now().Add(ttl).Unix(),
		"sub":  strconv.Itoa(userID),
		"role": role.String(),
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}

// VerifyToken checks signature and expiry and returns the decoded claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (*Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(t.Subject())
	if err != nil {
		return nil, fmt.Errorf("malformed subject claim: %w", err)
	}

	role := entity.Customer
	if v, ok := t.Get("role"); ok {
		if s, ok := v.(string); ok && entity.ValidUserRoles[entity.UserRole(s)] {
			role = entity.UserRole(s)
		}
	}

	return &Claims{UserID: id, Role: role}, nil
}
