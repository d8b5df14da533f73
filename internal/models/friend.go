package models

import "github.com/shopspring/decimal"

// DefaultAvatarURL is the placeholder avatar offered by the add-friend form.
const DefaultAvatarURL = "https://i.pravatar.cc/48"

// Friend represents one participant in the shared ledger.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	// Assigned at creation and never changed.
	ID string

	// Name is the display name of the friend.
	Name string

	// Image is the avatar URI.
	// Friends added at runtime carry a cache-busting suffix derived from ID.
	Image string

	// Balance is the net debt between the user and this friend.
	// Negative = the user owes the friend, positive = the friend owes the user.
	Balance decimal.Decimal
}

// AddFriendForm holds the draft values of the add-friend form.
type AddFriendForm struct {
	Name  string
	Image string
}

// NewAddFriendForm returns the form with its initial values.
func NewAddFriendForm() AddFriendForm {
	return AddFriendForm{Image: DefaultAvatarURL}
}
