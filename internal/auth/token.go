package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles a user can hold.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Principal is the authenticated identity derived from a verified token.
// It always carries both identity forms: the stable user id and the
// human-readable username. Authorization predicates state explicitly which
// of the two they compare against.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager. Sessions are short-lived by
// design: ttl is on the order of minutes, forcing re-authentication rather
// than keeping long-lived sessions around.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user. Both the subject id and the
// username are embedded so every caller can authorize by either form.
func (m *TokenManager) Issue(userID int64, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the principal it identifies.
// Verification is stateless; expiry and signature failures both surface as
// ErrInvalidToken.
func (m *TokenManager) Parse(tokenStr string) (*Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	p := &Principal{}
	if sub, ok := claims["sub"].(string); ok {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			p.UserID = id
		} else {
			// Tokens from the first issuer revision carried the username
			// in the subject claim and nothing else.
			p.Username = sub
		}
	}
	if username, ok := claims["username"].(string); ok {
		p.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}

	if p.Username == "" {
		return nil, ErrInvalidToken
	}
	return p, nil
}
