package ledger

import (
	"github.com/mmynk/splitfriends/internal/models"
	"github.com/shopspring/decimal"
)

// Seed returns the friends a fresh session starts with.
func Seed(next IDGenerator) []models.Friend {
	if next == nil {
		next = UUIDGenerator
	}
	return []models.Friend{
		{ID: next(), Name: "Clark", Image: "https://i.pravatar.cc/48?u=118836", Balance: decimal.NewFromInt(-7)},
		{ID: next(), Name: "Sarah", Image: "https://i.pravatar.cc/48?u=933372", Balance: decimal.NewFromInt(20)},
		{ID: next(), Name: "Anthony", Image: "https://i.pravatar.cc/48?u=499476", Balance: decimal.Zero},
	}
}
