// Package auth issues and validates the tokens that bind a client to its
// ledger session. There are no user accounts: a token only proves that the
// bearer created the session it names.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("session token required")
)

const issuer = "splitfriends"

// SessionManager handles session token generation and validation.
type SessionManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// Claims represents the JWT claims for a ledger session.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager with the given secret and token duration.
// An empty secret is replaced by a random one, which invalidates all tokens
// on restart; sessions do not survive a restart anyway.
func NewSessionManager(secretKey string, tokenDuration time.Duration) (*SessionManager, error) {
	key := []byte(secretKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}
	return &SessionManager{
		secretKey:     key,
		tokenDuration: tokenDuration,
		now:           time.Now,
	}, nil
}

// TokenDuration reports how long issued tokens stay valid.
func (m *SessionManager) TokenDuration() time.Duration {
	return m.tokenDuration
}

// Generate creates a new token for the given session.
func (m *SessionManager) Generate(sessionID string) (string, error) {
	now := m.now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a token, returning the claims if valid.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
