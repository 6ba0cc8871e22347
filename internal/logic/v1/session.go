package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionManager issues and verifies stateless HS256 session tokens.
// Nothing is stored server-side, so a token stays valid until it expires.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager fails when the signing secret is empty.
func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("session signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of issued tokens; the cookie Max-Age matches it.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue returns a signed token whose subject is userID.
func (m *SessionManager) Issue(userID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns the user id embedded in a valid token.
// Every failure wraps ErrUnauthenticated.
func (m *SessionManager) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("missing session token: %w", ErrUnauthenticated)
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("verify session token: %w: %w", ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject: %w", ErrUnauthenticated)
	}

	return claims.Subject, nil
}
