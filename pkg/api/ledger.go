// Package api defines the wire messages of the splitfriends.v1 Connect
// services. Amounts travel as decimal strings so no precision is lost
// between clients and the ledger.
package api

// Payer values accepted by SplitBillRequest.
const (
	PayerUser   = "user"
	PayerFriend = "friend"
)

// Friend is one ledger entry as shown to a client.
type Friend struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	// Balance is a signed decimal string. Negative = the user owes the friend.
	Balance string `json:"balance"`
	// Standing is one of "settled", "user_owes", "friend_owes".
	Standing string `json:"standing"`
	// Description is a ready-to-display sentence, e.g. "You owe Clark $7.00".
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// AddFriendForm carries the add-friend form draft.
type AddFriendForm struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// LedgerState is the full observable state of a session.
type LedgerState struct {
	Friends            []*Friend      `json:"friends"`
	SelectedFriendID   string         `json:"selected_friend_id,omitempty"`
	SelectedFriendName string         `json:"selected_friend_name,omitempty"`
	AddFormVisible     bool           `json:"add_form_visible"`
	Form               *AddFriendForm `json:"form"`
	Currency           string         `json:"currency"`
}

// SelectedFriend returns the selected entry, or nil.
func (s *LedgerState) SelectedFriend() *Friend {
	if s == nil || s.SelectedFriendID == "" {
		return nil
	}
	for _, f := range s.Friends {
		if f.ID == s.SelectedFriendID {
			return f
		}
	}
	return nil
}

type CreateSessionRequest struct {
	// SkipSeed starts the session with an empty ledger instead of the
	// default three friends.
	SkipSeed bool `json:"skip_seed,omitempty"`
}

type CreateSessionResponse struct {
	Token string       `json:"token"`
	State *LedgerState `json:"state"`
}

type GetStateRequest struct{}

type AddFriendRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type ToggleAddFormRequest struct{}

// UpdateAddFormRequest replaces the add-friend form draft. Empty values are
// kept as typed; they are only checked when the friend is added.
type UpdateAddFormRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type SelectFriendRequest struct {
	FriendID string `json:"friend_id"`
}

type SplitBillRequest struct {
	// Payer is PayerUser or PayerFriend. Empty means PayerUser.
	Payer       string `json:"payer"`
	Bill        string `json:"bill"`
	UserExpense string `json:"user_expense"`
}

// StateResponse is returned by every call that reads or changes the ledger.
type StateResponse struct {
	State *LedgerState `json:"state"`
}

type EndSessionRequest struct{}

type EndSessionResponse struct{}
