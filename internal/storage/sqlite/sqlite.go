// Package sqlite provides an in-memory SQLite implementation of the
// storage.SessionStore interface.
//
// The database never touches disk: every store owns a private ":memory:"
// database on a single connection, and its contents vanish on Close.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitfriends/internal/storage"
)

// Ensure SQLiteStore implements storage.SessionStore
var _ storage.SessionStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.SessionStore using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a SQLiteStore backed by a fresh in-memory database and runs
// the schema setup.
func New() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is its own database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection, discarding all sessions.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession stores a new session with its friends.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *storage.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := s.now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = session.CreatedAt

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	state := session.State
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, selected_id, add_form_visible, form_name, form_image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, state.SelectedID, state.AddFormVisible, state.Form.Name, state.Form.Image,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertFriends(ctx, tx, session.ID, state.Friends); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID, including its friends in ledger order.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*storage.Session, error) {
	session := &storage.Session{}
	state := &session.State
	err := s.db.QueryRowContext(ctx,
		`SELECT id, selected_id, add_form_visible, form_name, form_image, created_at, updated_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &state.SelectedID, &state.AddFormVisible, &state.Form.Name, &state.Form.Image,
		&session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	state.Friends, err = listFriends(ctx, s.db, sessionID)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// SaveSession replaces the stored state of an existing session.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *storage.Session) error {
	session.UpdatedAt = s.now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	state := session.State
	result, err := tx.ExecContext(ctx,
		`UPDATE sessions
		 SET selected_id = ?, add_form_visible = ?, form_name = ?, form_image = ?, updated_at = ?
		 WHERE id = ?`,
		state.SelectedID, state.AddFormVisible, state.Form.Name, state.Form.Image, session.UpdatedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrSessionNotFound, session.ID)
	}

	// Replace friends wholesale; ledgers hold a handful of entries.
	if _, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("failed to delete friends: %w", err)
	}
	if err := insertFriends(ctx, tx, session.ID, state.Friends); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteSession removes a session. Friends are removed by cascade.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	return nil
}

// PruneSessions removes sessions last updated before the given time.
func (s *SQLiteStore) PruneSessions(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}

// CountSessions returns the number of stored sessions.
func (s *SQLiteStore) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
