package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitfriends/internal/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// insertFriends writes friends in ledger order. Balances are stored as
// decimal strings so they round-trip exactly.
func insertFriends(ctx context.Context, tx *sql.Tx, sessionID string, friends []models.Friend) error {
	for i, f := range friends {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO friends (session_id, position, id, name, image, balance) VALUES (?, ?, ?, ?, ?, ?)",
			sessionID, i, f.ID, f.Name, f.Image, f.Balance.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert friend: %w", err)
		}
	}
	return nil
}

// listFriends returns a session's friends in ledger order.
func listFriends(ctx context.Context, q queryer, sessionID string) ([]models.Friend, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, image, balance FROM friends WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	defer rows.Close()

	var friends []models.Friend
	for rows.Next() {
		var (
			f       models.Friend
			balance string
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Image, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		f.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance of friend %s: %w", f.ID, err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, nil
}
