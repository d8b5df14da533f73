package ledger

import "github.com/shopspring/decimal"

// Action is a single user-triggered transition of the ledger state.
type Action interface {
	// Kind identifies the action in logs and metrics.
	Kind() string
}

// AddFriend appends a new friend with a zero balance.
type AddFriend struct {
	Name  string
	Image string
}

// ToggleAddForm flips the visibility of the add-friend form.
type ToggleAddForm struct{}

// EditAddForm replaces the add-friend form draft. The draft is not
// validated; AddFriend checks the submitted values.
type EditAddForm struct {
	Name  string
	Image string
}

// SelectFriend selects a friend, or clears the selection if that friend is
// already selected.
type SelectFriend struct {
	ID string
}

// SplitBill records a bill shared between the user and the selected friend.
type SplitBill struct {
	// PayerIsUser is true when the user paid the whole bill.
	PayerIsUser bool
	// Bill is the total bill.
	Bill decimal.Decimal
	// UserExpense is the user's own portion of the bill.
	UserExpense decimal.Decimal
}

func (AddFriend) Kind() string     { return "add_friend" }
func (ToggleAddForm) Kind() string { return "toggle_add_form" }
func (EditAddForm) Kind() string   { return "edit_add_form" }
func (SelectFriend) Kind() string  { return "select_friend" }
func (SplitBill) Kind() string     { return "split_bill" }

// Delta is the change the split applies to the friend's balance.
// When the user pays, the friend owes their own portion; otherwise the user
// owes theirs.
func (a SplitBill) Delta() decimal.Decimal {
	if a.PayerIsUser {
		return FriendExpense(a.Bill, a.UserExpense)
	}
	return a.UserExpense.Neg()
}

// FriendExpense is the friend's portion of a bill, derived from the total
// and the user's portion. It is never entered independently.
func FriendExpense(bill, userExpense decimal.Decimal) decimal.Decimal {
	return bill.Sub(userExpense)
}
