package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitfriends/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// SessionIDKey is the context key for storing the caller's session ID.
	SessionIDKey contextKey = "session_id"
)

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}

// WithSessionID returns a context carrying the session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// RequireSession returns an interceptor that validates the session token in
// the Authorization header and adds the session ID to the request context.
// Procedures listed in open are let through without a token.
func RequireSession(sessions *auth.SessionManager, open ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(open))
	for _, p := range open {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return next(ctx, req)
			}

			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := sessions.Validate(parts[1])
			if err != nil {
				slog.Warn("Rejected session token", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithSessionID(ctx, claims.SessionID), req)
		}
	}
}

// BearerToken returns an interceptor for clients that sends token as a
// Bearer credential. The token is read on every call so it can be swapped
// after CreateSession.
func BearerToken(token func() string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if t := token(); t != "" && req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+t)
			}
			return next(ctx, req)
		}
	}
}
