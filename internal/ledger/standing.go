package ledger

import (
	"fmt"

	"github.com/mmynk/splitfriends/internal/models"
	"github.com/mmynk/splitfriends/internal/money"
	"github.com/shopspring/decimal"
)

// Standing classifies a balance from the user's point of view.
type Standing int

const (
	// Settled means neither side owes anything.
	Settled Standing = iota
	// UserOwes means the user owes the friend (negative balance).
	UserOwes
	// FriendOwes means the friend owes the user (positive balance).
	FriendOwes
)

func (s Standing) String() string {
	switch s {
	case UserOwes:
		return "user_owes"
	case FriendOwes:
		return "friend_owes"
	default:
		return "settled"
	}
}

// Classify returns the standing for balance.
func Classify(balance decimal.Decimal) Standing {
	switch balance.Sign() {
	case -1:
		return UserOwes
	case 1:
		return FriendOwes
	default:
		return Settled
	}
}

// Describe renders the friend's standing as a sentence, e.g.
// "You owe Clark $7.00". Any non-zero balance reads as owed, however small;
// money.Format keeps sub-cent amounts visible.
func Describe(f models.Friend, currency string) string {
	switch Classify(f.Balance) {
	case UserOwes:
		return fmt.Sprintf("You owe %s %s", f.Name, money.Format(f.Balance, currency))
	case FriendOwes:
		return fmt.Sprintf("%s owes you %s", f.Name, money.Format(f.Balance, currency))
	default:
		return fmt.Sprintf("You and %s are even", f.Name)
	}
}
