// Package storage provides abstractions for session state storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/splitfriends/internal/ledger"
)

// ErrSessionNotFound is returned when a session id is unknown or was pruned.
var ErrSessionNotFound = errors.New("session not found")

// Session is one client's transient ledger.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// State is the ledger state after the last applied transition.
	State ledger.State

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last saved transition.
	UpdatedAt int64
}

// SessionStore defines the interface for session storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer. Implementations must not outlive the process: sessions are
// transient by design of the ledger.
type SessionStore interface {
	// CreateSession stores a new session.
	// The session.ID and timestamps are populated by the store when empty.
	CreateSession(ctx context.Context, session *Session) error

	// GetSession retrieves a session by its ID.
	// Returns ErrSessionNotFound if it does not exist.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// SaveSession replaces the stored state of an existing session.
	// Returns ErrSessionNotFound if it does not exist.
	SaveSession(ctx context.Context, session *Session) error

	// DeleteSession removes a session and its friends.
	DeleteSession(ctx context.Context, sessionID string) error

	// PruneSessions removes sessions not updated since before and reports
	// how many were removed.
	PruneSessions(ctx context.Context, before time.Time) (int64, error)

	// CountSessions returns the number of live sessions.
	CountSessions(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
